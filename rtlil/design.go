package rtlil

import "github.com/pkg/errors"

// Design is an ordered collection of modules plus a selection stack. The
// top of the stack is the selection currently in effect; an empty stack
// means everything is selected.
type Design struct {
	modules     map[Identifier]*Module
	moduleOrder []Identifier

	selectionStack []*Selection
}

// NewDesign returns an empty design.
func NewDesign() *Design {
	return &Design{modules: map[Identifier]*Module{}}
}

// AddModule inserts m into d, replacing any existing module of the same
// name (so a later map file's module overrides an earlier one of that name).
func (d *Design) AddModule(m *Module) {
	if _, ok := d.modules[m.Name]; !ok {
		d.moduleOrder = append(d.moduleOrder, m.Name)
	}
	d.modules[m.Name] = m
}

// Module returns the module named name, if any.
func (d *Design) Module(name Identifier) (*Module, bool) {
	m, ok := d.modules[name]
	return m, ok
}

// ModuleNames returns the design's module names in insertion order.
func (d *Design) ModuleNames() []Identifier {
	out := make([]Identifier, len(d.moduleOrder))
	copy(out, d.moduleOrder)
	return out
}

// RemoveModule removes the module named name from d, if present.
func (d *Design) RemoveModule(name Identifier) {
	if _, ok := d.modules[name]; !ok {
		return
	}
	delete(d.modules, name)
	for i, n := range d.moduleOrder {
		if n == name {
			d.moduleOrder = append(d.moduleOrder[:i], d.moduleOrder[i+1:]...)
			break
		}
	}
}

// RenameModule renames a module, preserving its position in module order.
func (d *Design) RenameModule(old, new Identifier) {
	m, ok := d.modules[old]
	if !ok || old == new {
		return
	}
	delete(d.modules, old)
	m.Name = new
	d.modules[new] = m
	for i, n := range d.moduleOrder {
		if n == old {
			d.moduleOrder[i] = new
			break
		}
	}
}

// PushSelection scopes subsequent Selected/SelectedCell queries to sel,
// with guaranteed pop on all exit paths left to the caller (mirrors the
// push/pop-around-Pass::call discipline of the host toolchain).
func (d *Design) PushSelection(sel *Selection) {
	d.selectionStack = append(d.selectionStack, sel)
}

// PopSelection removes the most recently pushed selection.
func (d *Design) PopSelection() {
	if len(d.selectionStack) == 0 {
		return
	}
	d.selectionStack = d.selectionStack[:len(d.selectionStack)-1]
}

func (d *Design) top() *Selection {
	if len(d.selectionStack) == 0 {
		return nil
	}
	return d.selectionStack[len(d.selectionStack)-1]
}

// Selected reports whether module is selected under the current selection.
func (d *Design) Selected(module Identifier) bool {
	return d.top().SelectedModule(module)
}

// SelectedCell reports whether cell, in module, is selected under the
// current selection.
func (d *Design) SelectedCell(module, cell Identifier) bool {
	return d.top().SelectedCell(module, cell)
}

// FullSelection reports whether the design currently has no active
// selection restriction (an empty stack, or an explicit full selection on
// top).
func (d *Design) FullSelection() bool {
	t := d.top()
	return t == nil || t.Full
}

// Check validates the structural invariants of the data model: every wire
// reference in a cell connection resolves inside its own module, and every
// module's port indices are contiguous. Top-level connections are not
// checked.
func (d *Design) Check() error {
	for _, mn := range d.moduleOrder {
		m := d.modules[mn]
		if err := m.CheckPortsContiguous(); err != nil {
			return err
		}
		for _, cn := range m.cellOrder {
			c := m.cells[cn]
			for _, p := range c.connOrder {
				for _, chunk := range c.connections[p] {
					if chunk.isConst() {
						continue
					}
					if w, ok := m.Wire(chunk.Wire.Name); !ok || w != chunk.Wire {
						return errors.Errorf("rtlil: cell %q.%q connection %q references a wire not present in module %q",
							m.Name, c.Name, p, m.Name)
					}
				}
			}
		}
	}
	return nil
}
