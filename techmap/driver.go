package techmap

import (
	"strings"

	"github.com/synthkit/techmap/rtlil"
)

// buildCelltypeIndex builds the celltype->templates index: a template with
// a non-empty techmap_celltype attribute matches cells of the escaped
// attribute value; otherwise it matches its own name. Candidate order
// follows the order templates were added to the index, which in turn
// follows mapDesign's module order.
func buildCelltypeIndex(mapDesign *rtlil.Design) map[rtlil.Identifier][]rtlil.Identifier {
	index := map[rtlil.Identifier][]rtlil.Identifier{}
	for _, name := range mapDesign.ModuleNames() {
		m, _ := mapDesign.Module(name)
		key := name
		if celltype, ok := m.TechmapCelltype(); ok {
			key = rtlil.EscapeID(celltype)
		}
		index[key] = append(index[key], name)
	}
	return index
}

// renameEscapedAutoModules drops the leading backslash from any map-library
// module whose name is the escaped form of an auto-generated identifier
// (`\$foo` -> `$foo`).
func renameEscapedAutoModules(mapDesign *rtlil.Design) {
	for _, name := range mapDesign.ModuleNames() {
		s := string(name)
		if strings.HasPrefix(s, "\\$") {
			mapDesign.RenameModule(name, rtlil.Identifier(s[1:]))
		}
	}
}

// runFixpoint repeatedly maps every selected module of design against
// mapDesign until a full pass makes no further change, re-checking the
// design's structural invariants after every pass that did.
func runFixpoint(design *rtlil.Design, modules []*rtlil.Module, mapDesign *rtlil.Design, celltypeIndex map[rtlil.Identifier][]rtlil.Identifier, flattenMode bool, svc Services) error {
	cache := newElaborationCache()
	handled := map[*rtlil.Cell]bool{}

	for {
		didSomething := false
		for _, m := range modules {
			changed, err := RunModulePass(design, m, mapDesign, handled, celltypeIndex, flattenMode, cache, svc)
			if err != nil {
				return err
			}
			if changed {
				didSomething = true
			}
		}
		if didSomething {
			if err := design.Check(); err != nil {
				return err
			}
		} else {
			break
		}
	}
	return nil
}

// allModules returns every module of d in insertion order. The order in
// which the fixpoint driver visits modules is part of the observable
// contract, so callers must not re-sort this slice.
func allModules(d *rtlil.Design) []*rtlil.Module {
	names := d.ModuleNames()
	out := make([]*rtlil.Module, 0, len(names))
	for _, n := range names {
		m, _ := d.Module(n)
		out = append(out, m)
	}
	return out
}
