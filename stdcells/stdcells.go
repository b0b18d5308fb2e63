// Package stdcells provides the builtin default map library used by
// Techmap when no external map files are given: a handful of primitive
// gate templates (the bit-level equivalents of the host toolchain's own
// gate library) whose bodies are RTLIL primitive cells: one cell each,
// except DMUX, which is built from a NOT and two ANDs.
package stdcells

import (
	_ "embed"
	"strings"

	"github.com/synthkit/techmap/internal/ilang"
	"github.com/synthkit/techmap/rtlil"
)

//go:embed stdcells.il
var source string

// Load parses the embedded default map library into a fresh design.
func Load() (*rtlil.Design, error) {
	return ilang.Parse(strings.NewReader(source))
}
