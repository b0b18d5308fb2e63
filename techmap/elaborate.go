package techmap

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/synthkit/techmap/rtlil"
)

const (
	failTag = "_TECHMAP_FAIL_"
	doInfix = "_TECHMAP_DO_"
	doneTag = "_TECHMAP_DONE_"
)

// Elaborate ensures tpl (a module in mapDesign) is elaborated exactly once,
// running its embedded directives to a fixpoint, and reports whether the
// result is usable. The outcome is memoized in cache.
func Elaborate(mapDesign *rtlil.Design, tpl rtlil.Identifier, cache *elaborationCache, runner PassRunner) (bool, error) {
	if usable, done := cache.isElaborated(tpl); done {
		return usable, nil
	}

	for {
		m, ok := mapDesign.Module(tpl)
		if !ok {
			return false, errors.Errorf("techmap: template %q not found in map design during elaboration", tpl)
		}
		records := ScanSpecialWires(m)

		if recs, ok := records[failTag]; ok {
			for _, r := range recs {
				if r.Value.IsFullyConst() && r.Value.AsConst().Bool() {
					cache.setElaborated(tpl, false)
					return false, nil
				}
			}
		}

		tags := sortedDoTags(records)
		if len(tags) == 0 {
			break
		}
		tag := tags[0]
		rec := records[tag][0]

		if !rec.Value.IsFullyConst() {
			return false, errors.Errorf("techmap: directive wire %q in template %q is not driven by a constant (value %v)",
				rec.Wire.Name, tpl, rec.Value)
		}
		command := rec.Value.AsConst().Command()

		if err := renameDoToDone(m, rec.Wire, tag); err != nil {
			return false, err
		}

		mapDesign.PushSelection(rtlil.ModuleSelection(tpl))
		err := runner.Call(mapDesign, command)
		mapDesign.PopSelection()
		if err != nil {
			return false, errors.Wrapf(err, "techmap: directive %q on template %q", command, tpl)
		}
	}

	m, _ := mapDesign.Module(tpl)
	if err := checkFinalSpecialWires(m); err != nil {
		return false, err
	}

	cache.setElaborated(tpl, true)
	return true, nil
}

// renameDoToDone renames w in place, replacing the "_TECHMAP_DO_" infix of
// its trailing tag with "_TECHMAP_DONE_" and appending "_" as needed until
// the new name is unique within m, so the directive is neither re-run nor
// later mistaken for an unknown tag.
func renameDoToDone(m *rtlil.Module, w *rtlil.Wire, tag string) error {
	oldName := string(w.Name)
	if !strings.HasSuffix(oldName, tag) {
		return errors.Errorf("techmap: internal error: wire %q does not end in its own tag %q", oldName, tag)
	}
	head := oldName[:len(oldName)-len(tag)]
	doneSuffix := strings.Replace(tag, doInfix, doneTag, 1)
	newName := rtlil.Identifier(head + doneSuffix)
	for {
		if _, exists := m.Wire(newName); !exists {
			break
		}
		newName += "_"
	}
	m.RemoveWire(w.Name)
	w.Name = newName
	return m.AddWire(w)
}

// checkFinalSpecialWires performs the end-of-elaboration termination check:
// once no _TECHMAP_DO_ tag remains, any special wire
// whose tag is not _TECHMAP_FAIL_, _TECHMAP_DO_* or _TECHMAP_DONE_* is
// fatal, and any remaining FAIL wire must be fully constant.
func checkFinalSpecialWires(m *rtlil.Module) error {
	for tag, recs := range ScanSpecialWires(m) {
		switch {
		case tag == failTag:
			for _, r := range recs {
				if !r.Value.IsFullyConst() {
					return errors.Errorf("techmap: FAIL wire %q in template %q is not driven by a constant",
						r.Wire.Name, m.Name)
				}
			}
		case strings.HasPrefix(tag, doInfix), strings.HasPrefix(tag, doneTag):
			// expected leftovers; Elaborate calls this only after a scan
			// that found no DO_ tag, so in practice only DONE_ wires
			// reach this case.
		default:
			return errors.Errorf("techmap: template %q has unknown special wire tag %q", m.Name, tag)
		}
	}
	return nil
}
