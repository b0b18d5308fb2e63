package techmap

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/synthkit/techmap/rtlil"
)

// ExpandCell clones tpl's body into host, rewires it in place of cell, and
// removes cell.
func ExpandCell(mapDesign *rtlil.Design, host *rtlil.Module, cell *rtlil.Cell, tpl *rtlil.Module, flattenMode bool) error {
	if tpl.Memories != 0 {
		return errors.Errorf("techmap: template %q has memories, which are not supported", tpl.Name)
	}
	if tpl.Processes != 0 {
		return errors.Errorf("techmap: template %q has processes, which are not supported", tpl.Name)
	}

	prefix := cell.Name
	positionalPorts := map[rtlil.Identifier]rtlil.Identifier{}

	// Step 1: clone wires.
	for _, name := range tpl.WireNames() {
		w, _ := tpl.Wire(name)
		if w.PortID > 0 {
			positionalPorts[rtlil.Identifier(fmt.Sprintf("$%d", w.PortID))] = name
		}
		clone := w.Clone()
		clone.Name = ApplyPrefix(prefix, name)
		clone.PortID, clone.PortInput, clone.PortOutput = 0, false, false
		if w.BoolAttr("_techmap_special_") {
			clone.Attributes = map[string]rtlil.Const{}
		}
		if err := host.AddWire(clone); err != nil {
			return errors.Wrapf(err, "techmap: expanding cell %q", cell.Name)
		}
	}

	// Step 2: reconcile connections into a signal rewrite map.
	portSignalMap := rtlil.NewSigMap()
	for _, conn := range cell.Connections() {
		portname := conn.Port
		if resolved, ok := positionalPorts[portname]; ok {
			portname = resolved
		}
		tplWire, ok := tpl.Wire(portname)
		if !ok || tplWire.PortID == 0 {
			if portname.IsAuto() {
				return errors.Errorf("techmap: can't map port %q of cell %q to template %q", conn.Port, cell.Name, tpl.Name)
			}
			continue
		}

		internal, err := PrefixSignal(prefix, rtlil.SigFromWire(tplWire), host)
		if err != nil {
			return err
		}
		external := conn.Sig

		// first is whichever side sets the target width; second is
		// reconciled to match it. Either way the map rewrites the internal
		// wire's bits to the external signal; the cloned internal wire
		// itself stays in host.
		var first, second rtlil.SigSpec
		if tplWire.PortOutput {
			first, second = external, internal
		} else {
			first, second = internal, external
		}
		switch {
		case second.Width() > first.Width():
			second = second.Extract(0, first.Width())
		case second.Width() < first.Width():
			second = second.ZeroExtend(first.Width())
		}
		if tplWire.PortOutput {
			internal = second
		} else {
			external = second
		}
		portSignalMap.Add(internal, external)
	}

	// Step 3: clone cells.
	for _, cn := range tpl.CellNames() {
		tc, _ := tpl.Cell(cn)
		clone := tc.Clone()
		clone.Name = ApplyPrefix(prefix, cn)
		if !flattenMode && clone.Type.IsPublic() && len(clone.Type) > 1 && clone.Type[1] == '$' {
			clone.Type = rtlil.Identifier(clone.Type[1:])
		}
		for _, conn := range clone.Connections() {
			sig, err := PrefixSignal(prefix, conn.Sig, host)
			if err != nil {
				return err
			}
			clone.SetConnection(conn.Port, portSignalMap.Apply(sig))
		}
		if err := host.AddCell(clone); err != nil {
			return errors.Wrapf(err, "techmap: expanding cell %q", cell.Name)
		}
	}

	// Step 4: clone top-level connections.
	for _, cc := range tpl.Connections {
		lhs, err := PrefixSignal(prefix, cc.LHS, host)
		if err != nil {
			return err
		}
		rhs, err := PrefixSignal(prefix, cc.RHS, host)
		if err != nil {
			return err
		}
		host.AddConnection(portSignalMap.Apply(lhs), portSignalMap.Apply(rhs))
	}

	// Step 5: remove the source cell.
	host.RemoveCell(cell.Name)
	return nil
}
