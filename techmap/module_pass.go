package techmap

import (
	"github.com/synthkit/techmap/rtlil"
)

// RunModulePass is the per-module mapping pass: it walks module's cells,
// and for each one whose type has a mapping, tries every candidate
// template in celltypeIndex order until one expands successfully.
func RunModulePass(
	design *rtlil.Design,
	module *rtlil.Module,
	mapDesign *rtlil.Design,
	handled map[*rtlil.Cell]bool,
	celltypeIndex map[rtlil.Identifier][]rtlil.Identifier,
	flattenMode bool,
	cache *elaborationCache,
	svc Services,
) (bool, error) {
	if !design.Selected(module.Name) {
		return false, nil
	}

	didSomething := false
	cellNames := module.CellNames()

	for _, cellName := range cellNames {
		cell, ok := module.Cell(cellName)
		if !ok {
			continue // removed by an earlier expansion in this pass
		}
		if !design.SelectedCell(module.Name, cell.Name) || handled[cell] {
			continue
		}
		candidates, ok := celltypeIndex[cell.Type]
		if !ok {
			continue
		}

		for _, tplName := range candidates {
			tpl, _ := mapDesign.Module(tplName)
			parameters, signed, ok := bindParameters(cell, tpl, flattenMode)
			if !ok {
				continue
			}

			specialized := tplName
			if flattenMode {
				// Flattening bypasses parameter specialization entirely.
				cache.setElaborated(specialized, true)
			} else {
				key := specializationKey(tplName, parameters, signed)
				if derived, hit := cache.getSpecialization(key); hit {
					specialized = derived
				} else if len(parameters) != 0 && svc.Deriver != nil {
					derivedName, err := svc.Deriver.Derive(mapDesign, tplName, parameters, signed)
					if err != nil {
						return didSomething, err
					}
					specialized = derivedName
					cache.putSpecialization(key, specialized)
				} else {
					cache.putSpecialization(key, specialized)
				}
			}

			usable, done := cache.isElaborated(specialized)
			if !done {
				var err error
				usable, err = Elaborate(mapDesign, specialized, cache, svc.PassRunner)
				if err != nil {
					return didSomething, err
				}
			}
			if !usable {
				continue
			}

			specializedTpl, _ := mapDesign.Module(specialized)
			if err := ExpandCell(mapDesign, module, cell, specializedTpl, flattenMode); err != nil {
				return didSomething, err
			}
			if svc.Logger != nil {
				svc.Logger.Info("mapped cell", "module", string(module.Name), "cell", string(cell.Name), "template", string(specialized))
			}
			didSomething = true
			break
		}

		handled[cell] = true
	}

	return didSomething, nil
}

// bindParameters builds the parameter binding a template candidate would be
// specialized with. In flatten mode the cell's own parameters are used
// as-is (no constant-port binding).
func bindParameters(cell *rtlil.Cell, tpl *rtlil.Module, flattenMode bool) (map[rtlil.Identifier]rtlil.Const, map[rtlil.Identifier]bool, bool) {
	parameters := make(map[rtlil.Identifier]rtlil.Const, len(cell.Parameters))
	for k, v := range cell.Parameters {
		parameters[k] = v
	}
	signed := make(map[rtlil.Identifier]bool, len(cell.SignedParameters))
	for k, v := range cell.SignedParameters {
		signed[k] = v
	}
	if flattenMode {
		return parameters, signed, true
	}

	for _, conn := range cell.Connections() {
		if conn.Port.IsAuto() {
			continue
		}
		if w, ok := tpl.Wire(conn.Port); ok && w.PortID > 0 {
			continue
		}
		if !conn.Sig.IsFullyConst() {
			return nil, nil, false
		}
		if _, bound := parameters[conn.Port]; bound {
			return nil, nil, false
		}
		parameters[conn.Port] = conn.Sig.AsConst()
	}
	return parameters, signed, true
}
