// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing the mapping engine.
package hwtest

import (
	"strings"
	"testing"

	"github.com/synthkit/techmap/rtlil"
	"github.com/synthkit/techmap/techmap"
)

// CompareExpansions checks the memoization invariant: two cells expanded
// from the same template under the same parameters must be structurally
// identical inside host, differing only by their instance prefix. tpl gives
// the relative wire and cell names to check; prefixA and prefixB are the
// two expansions' instance prefixes (cell names).
func CompareExpansions(t *testing.T, host *rtlil.Module, tpl *rtlil.Module, prefixA, prefixB rtlil.Identifier) {
	t.Helper()

	for _, rel := range tpl.WireNames() {
		wa, aok := host.Wire(techmap.ApplyPrefix(prefixA, rel))
		wb, bok := host.Wire(techmap.ApplyPrefix(prefixB, rel))
		if aok != bok {
			t.Fatalf("wire %q: present under %q=%v, under %q=%v", rel, prefixA, aok, prefixB, bok)
		}
		if !aok {
			continue
		}
		if wa.Width != wb.Width {
			t.Fatalf("wire %q: width %d under %q, width %d under %q", rel, wa.Width, prefixA, wb.Width, prefixB)
		}
	}

	for _, rel := range tpl.CellNames() {
		ca, aok := host.Cell(techmap.ApplyPrefix(prefixA, rel))
		cb, bok := host.Cell(techmap.ApplyPrefix(prefixB, rel))
		if aok != bok {
			t.Fatalf("cell %q: present under %q=%v, under %q=%v", rel, prefixA, aok, prefixB, bok)
		}
		if !aok {
			continue
		}
		if ca.Type != cb.Type {
			t.Fatalf("cell %q: type %q under %q, type %q under %q", rel, ca.Type, prefixA, cb.Type, prefixB)
		}
		compareConnections(t, rel, ca, cb, prefixA, prefixB)
	}
}

// compareConnections compares two cell instances' connections after
// stripping each side's own instance prefix from any wire reference that
// falls inside it, so that internal wiring compares structurally while
// shared external nets still compare literally.
func compareConnections(t *testing.T, rel rtlil.Identifier, ca, cb *rtlil.Cell, prefixA, prefixB rtlil.Identifier) {
	t.Helper()
	portsA := ca.ConnectionNames()
	portsB := cb.ConnectionNames()
	if len(portsA) != len(portsB) {
		t.Fatalf("cell %q: %d connections under %q, %d under %q", rel, len(portsA), prefixA, len(portsB), prefixB)
	}
	for _, port := range portsA {
		sigA, _ := ca.Connection(port)
		sigB, _ := cb.Connection(port)
		if canon(sigA, prefixA) != canon(sigB, prefixB) {
			t.Fatalf("cell %q port %q: signal differs between prefix %q and prefix %q", rel, port, prefixA, prefixB)
		}
	}
}

// canon renders sig as a comparable string, replacing any wire name that
// contains prefix's own qualification (in either the `\cell.` or the
// `$techmap\cell.` form ApplyPrefix produces) with a placeholder so that two
// internally-wired signals compare equal regardless of prefix.
func canon(sig rtlil.SigSpec, prefix rtlil.Identifier) string {
	var b strings.Builder
	own := string(prefix) + "."
	for _, chunk := range sig {
		if chunk.Wire == nil {
			b.WriteString(chunk.Data.String())
			continue
		}
		name := string(chunk.Wire.Name)
		if strings.Contains(name, own) {
			name = "<internal>" + name[strings.Index(name, own)+len(own):]
		}
		b.WriteString(name)
	}
	return b.String()
}
