package techmap

import (
	"sort"
	"strings"

	"github.com/synthkit/techmap/rtlil"
)

// SpecialWireRecord is one `_TECHMAP_*` wire found in a template, together
// with the signal that drives it (after substitution through the
// template's top-level connections).
type SpecialWireRecord struct {
	Wire  *rtlil.Wire
	Value rtlil.SigSpec
}

// ScanSpecialWires finds every `_TECHMAP_*` wire in tpl, grouped by tag,
// and reports the signal driving each one. Matched wires are marked with
// the "keep" and "_techmap_special_" attributes so the expansion worker
// can recognize and strip them later.
func ScanSpecialWires(tpl *rtlil.Module) map[string][]SpecialWireRecord {
	records := map[string][]SpecialWireRecord{}
	for _, name := range tpl.WireNames() {
		w, _ := tpl.Wire(name)
		tag, ok := rtlil.SpecialTag(name)
		if !ok {
			continue
		}
		w.SetBoolAttr("keep")
		w.SetBoolAttr("_techmap_special_")
		records[tag] = append(records[tag], SpecialWireRecord{Wire: w})
	}
	if len(records) == 0 {
		return records
	}
	sm := rtlil.NewSigMap()
	for _, conn := range tpl.Connections {
		sm.Add(conn.LHS, conn.RHS)
	}
	for tag, recs := range records {
		for i, r := range recs {
			recs[i].Value = sm.Apply(rtlil.SigFromWire(r.Wire))
		}
		records[tag] = recs
	}
	return records
}

// sortedDoTags returns the _TECHMAP_DO_* tags of records in ascending
// order, picking a deterministic directive processing order explicitly
// rather than relying on map iteration.
func sortedDoTags(records map[string][]SpecialWireRecord) []string {
	var tags []string
	for tag := range records {
		if strings.HasPrefix(tag, "_TECHMAP_DO_") {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}
