package rtlil

import "github.com/pkg/errors"

// SigSig is a top-level signal equality (lhs, rhs) recorded on a module.
type SigSig struct {
	LHS SigSpec
	RHS SigSpec
}

// Module is a netlist unit: wires, cells, and top-level signal equalities.
// Wire and cell collections preserve insertion order for deterministic
// iteration.
type Module struct {
	Name        Identifier
	Attributes  map[string]Const
	Connections []SigSig
	Memories    int
	Processes   int

	wires     map[Identifier]*Wire
	wireOrder []Identifier
	cells     map[Identifier]*Cell
	cellOrder []Identifier
}

// NewModule creates an empty module.
func NewModule(name Identifier) *Module {
	return &Module{
		Name:       name,
		Attributes: map[string]Const{},
		wires:      map[Identifier]*Wire{},
		cells:      map[Identifier]*Cell{},
	}
}

// BoolAttr reports whether attribute name is set on m to a non-zero value.
func (m *Module) BoolAttr(name string) bool {
	c, ok := m.Attributes[name]
	return ok && c.Bool()
}

// TechmapCelltype returns the value of the techmap_celltype attribute, if
// set and non-empty.
func (m *Module) TechmapCelltype() (string, bool) {
	c, ok := m.Attributes["techmap_celltype"]
	if !ok {
		return "", false
	}
	s := c.Command()
	return s, s != ""
}

// AddWire inserts w into m. It is an error to add a wire whose name
// already exists in m.
func (m *Module) AddWire(w *Wire) error {
	if _, ok := m.wires[w.Name]; ok {
		return errors.Errorf("rtlil: wire %q already exists in module %q", w.Name, m.Name)
	}
	m.wires[w.Name] = w
	m.wireOrder = append(m.wireOrder, w.Name)
	return nil
}

// Wire returns the wire named name, if any.
func (m *Module) Wire(name Identifier) (*Wire, bool) {
	w, ok := m.wires[name]
	return w, ok
}

// WireNames returns the module's wire names in insertion order.
func (m *Module) WireNames() []Identifier {
	out := make([]Identifier, len(m.wireOrder))
	copy(out, m.wireOrder)
	return out
}

// RemoveWire removes the wire named name from m, if present.
func (m *Module) RemoveWire(name Identifier) {
	if _, ok := m.wires[name]; !ok {
		return
	}
	delete(m.wires, name)
	for i, n := range m.wireOrder {
		if n == name {
			m.wireOrder = append(m.wireOrder[:i], m.wireOrder[i+1:]...)
			break
		}
	}
}

// AddCell inserts c into m. It is an error to add a cell whose name already
// exists in m.
func (m *Module) AddCell(c *Cell) error {
	if _, ok := m.cells[c.Name]; ok {
		return errors.Errorf("rtlil: cell %q already exists in module %q", c.Name, m.Name)
	}
	m.cells[c.Name] = c
	m.cellOrder = append(m.cellOrder, c.Name)
	return nil
}

// Cell returns the cell named name, if any.
func (m *Module) Cell(name Identifier) (*Cell, bool) {
	c, ok := m.cells[name]
	return c, ok
}

// CellNames returns the module's cell names in insertion order.
func (m *Module) CellNames() []Identifier {
	out := make([]Identifier, len(m.cellOrder))
	copy(out, m.cellOrder)
	return out
}

// RemoveCell removes the cell named name from m, if present.
func (m *Module) RemoveCell(name Identifier) {
	if _, ok := m.cells[name]; !ok {
		return
	}
	delete(m.cells, name)
	for i, n := range m.cellOrder {
		if n == name {
			m.cellOrder = append(m.cellOrder[:i], m.cellOrder[i+1:]...)
			break
		}
	}
}

// AddConnection appends a top-level signal equality to m.
func (m *Module) AddConnection(lhs, rhs SigSpec) {
	m.Connections = append(m.Connections, SigSig{LHS: lhs, RHS: rhs})
}

// Ports returns the module's port wires ordered by PortID (1..k).
func (m *Module) Ports() []*Wire {
	var ports []*Wire
	for _, n := range m.wireOrder {
		if w := m.wires[n]; w.IsPort() {
			ports = append(ports, w)
		}
	}
	// sort by PortID; k is expected to be small so insertion sort is fine.
	for i := 1; i < len(ports); i++ {
		for j := i; j > 0 && ports[j-1].PortID > ports[j].PortID; j-- {
			ports[j-1], ports[j] = ports[j], ports[j-1]
		}
	}
	return ports
}

// CheckPortsContiguous verifies that the module's port indices form a
// contiguous sequence 1..k, as required by the data-model invariants.
func (m *Module) CheckPortsContiguous() error {
	ports := m.Ports()
	for i, w := range ports {
		if w.PortID != i+1 {
			return errors.Errorf("rtlil: module %q has non-contiguous port ids (wire %q has id %d, expected %d)",
				m.Name, w.Name, w.PortID, i+1)
		}
	}
	return nil
}

// Clone returns a deep, independent copy of m. Wire pointers inside cloned
// cell connections are rebound to the clone's own wires.
func (m *Module) Clone() *Module {
	n := NewModule(m.Name)
	n.Memories = m.Memories
	n.Processes = m.Processes
	for k, v := range m.Attributes {
		vv := make(Const, len(v))
		copy(vv, v)
		n.Attributes[k] = vv
	}
	remap := make(map[*Wire]*Wire, len(m.wireOrder))
	for _, name := range m.wireOrder {
		w := m.wires[name].Clone()
		remap[m.wires[name]] = w
		_ = n.AddWire(w)
	}
	rebind := func(s SigSpec) SigSpec {
		out := make(SigSpec, len(s))
		for i, c := range s {
			if c.isConst() {
				out[i] = c
				continue
			}
			out[i] = c
			out[i].Wire = remap[c.Wire]
		}
		return out
	}
	for _, name := range m.cellOrder {
		c := m.cells[name].Clone()
		for _, p := range c.connOrder {
			c.connections[p] = rebind(c.connections[p])
		}
		_ = n.AddCell(c)
	}
	for _, cc := range m.Connections {
		n.Connections = append(n.Connections, SigSig{LHS: rebind(cc.LHS), RHS: rebind(cc.RHS)})
	}
	return n
}
