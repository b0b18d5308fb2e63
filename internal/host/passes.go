package host

import (
	"github.com/pkg/errors"
	"github.com/synthkit/techmap/rtlil"
)

// PassFunc is a single named command a Registry can dispatch to, mirroring
// the host toolchain's Pass::call.
type PassFunc func(d *rtlil.Design) error

// Registry is a techmap.PassRunner backed by a name-to-PassFunc table. It
// comes preloaded with the handful of passes the embedded directive
// protocol (_TECHMAP_DO_*) most commonly names: proc, opt_clean, check, and
// a no-op memory_collect standing in for a pass this module doesn't
// otherwise implement.
type Registry struct {
	passes map[string]PassFunc
}

// NewRegistry returns a Registry preloaded with the default passes.
func NewRegistry() *Registry {
	r := &Registry{passes: map[string]PassFunc{}}
	r.Register("proc", passProc)
	r.Register("opt_clean", passOptClean)
	r.Register("check", passCheck)
	r.Register("memory_collect", passNoop)
	return r
}

// Register adds or replaces the pass named name.
func (r *Registry) Register(name string, fn PassFunc) {
	r.passes[name] = fn
}

// Call implements techmap.PassRunner. command is the directive string
// decoded off a _TECHMAP_DO_* wire; only its first word selects the pass,
// and the rest of the command is ignored (a PassFunc takes no arguments).
func (r *Registry) Call(d *rtlil.Design, command string) error {
	name, _ := splitCommand(command)
	fn, ok := r.passes[name]
	if !ok {
		return errors.Errorf("techmap: no such pass %q", name)
	}
	return fn(d)
}

func splitCommand(command string) (name, rest string) {
	for i := 0; i < len(command); i++ {
		if command[i] == ' ' {
			return command[:i], command[i+1:]
		}
	}
	return command, ""
}

// passProc is a stand-in for the process-elimination pass: this module has
// no process statements to lower (rtlil.Module.Processes only ever counts
// them), so it simply verifies there are none left unaccounted for under
// the current selection.
func passProc(d *rtlil.Design) error {
	for _, name := range d.ModuleNames() {
		if !d.Selected(name) {
			continue
		}
		m, _ := d.Module(name)
		if m.Processes != 0 {
			return errors.Errorf("techmap: module %q has %d unsupported process(es)", name, m.Processes)
		}
	}
	return nil
}

// passOptClean removes non-port wires that are no longer referenced by any
// cell connection or top-level connection, under the current selection.
// Port wires are always kept.
func passOptClean(d *rtlil.Design) error {
	for _, name := range d.ModuleNames() {
		if !d.Selected(name) {
			continue
		}
		m, _ := d.Module(name)
		used := map[rtlil.Identifier]bool{}
		markUsed := func(sig rtlil.SigSpec) {
			for _, chunk := range sig {
				if chunk.Wire != nil {
					used[chunk.Wire.Name] = true
				}
			}
		}
		for _, cn := range m.CellNames() {
			c, _ := m.Cell(cn)
			for _, conn := range c.Connections() {
				markUsed(conn.Sig)
			}
		}
		for _, cc := range m.Connections {
			markUsed(cc.LHS)
			markUsed(cc.RHS)
		}
		for _, wn := range m.WireNames() {
			w, _ := m.Wire(wn)
			if w.PortID > 0 || used[wn] {
				continue
			}
			m.RemoveWire(wn)
		}
	}
	return nil
}

func passCheck(d *rtlil.Design) error {
	return d.Check()
}

func passNoop(d *rtlil.Design) error {
	return nil
}
