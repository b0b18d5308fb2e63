package ilang

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/synthkit/techmap/rtlil"
)

// Write serializes d in the same notation Parse reads, primarily to let
// derived/cloned modules be inspected during debugging and to round-trip
// fixtures in tests.
func Write(w io.Writer, d *rtlil.Design) error {
	bw := bufio.NewWriter(w)
	for _, name := range d.ModuleNames() {
		m, _ := d.Module(name)
		writeModule(bw, m)
	}
	return bw.Flush()
}

func writeModule(w *bufio.Writer, m *rtlil.Module) {
	fmt.Fprintf(w, "module %s\n", m.Name)
	for _, name := range attrKeys(m.Attributes) {
		fmt.Fprintf(w, "  attribute \\%s %s\n", name, writeConst(m.Attributes[name]))
	}
	for _, wn := range m.WireNames() {
		wire, _ := m.Wire(wn)
		writeWire(w, wire)
	}
	for _, cn := range m.CellNames() {
		c, _ := m.Cell(cn)
		writeCell(w, c)
	}
	for _, cc := range m.Connections {
		fmt.Fprintf(w, "  connect %s %s\n", writeSignal(cc.LHS), writeSignal(cc.RHS))
	}
	fmt.Fprintln(w, "end")
}

func writeWire(w *bufio.Writer, wire *rtlil.Wire) {
	fmt.Fprintf(w, "  wire width %d", wire.Width)
	switch {
	case wire.PortInput && wire.PortOutput:
		fmt.Fprintf(w, " inout %d", wire.PortID)
	case wire.PortInput:
		fmt.Fprintf(w, " input %d", wire.PortID)
	case wire.PortOutput:
		fmt.Fprintf(w, " output %d", wire.PortID)
	}
	fmt.Fprintf(w, " %s\n", wire.Name)
}

func writeCell(w *bufio.Writer, c *rtlil.Cell) {
	fmt.Fprintf(w, "  cell %s %s\n", c.Type, c.Name)
	for _, pn := range paramKeys(c.Parameters) {
		if c.SignedParameters[pn] {
			fmt.Fprintf(w, "    parameter signed %s %s\n", pn, writeConst(c.Parameters[pn]))
		} else {
			fmt.Fprintf(w, "    parameter %s %s\n", pn, writeConst(c.Parameters[pn]))
		}
	}
	for _, conn := range c.Connections() {
		fmt.Fprintf(w, "    connect %s %s\n", conn.Port, writeSignal(conn.Sig))
	}
	fmt.Fprintln(w, "  end")
}

func writeConst(c rtlil.Const) string {
	return fmt.Sprintf("%d'b%s", len(c), c.String())
}

func writeSignal(s rtlil.SigSpec) string {
	if len(s) == 1 {
		return writeChunk(s[0])
	}
	out := "{"
	for i := len(s) - 1; i >= 0; i-- {
		if i != len(s)-1 {
			out += ", "
		}
		out += writeChunk(s[i])
	}
	return out + "}"
}

func writeChunk(c rtlil.SigChunk) string {
	if c.Wire == nil {
		return writeConst(c.Data)
	}
	if c.Offset == 0 && c.Width == c.Wire.Width {
		return string(c.Wire.Name)
	}
	if c.Width == 1 {
		return fmt.Sprintf("%s[%d]", c.Wire.Name, c.Offset)
	}
	return fmt.Sprintf("%s[%d:%d]", c.Wire.Name, c.Offset+c.Width-1, c.Offset)
}

func attrKeys(m map[string]rtlil.Const) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func paramKeys(m map[rtlil.Identifier]rtlil.Const) []rtlil.Identifier {
	out := make([]rtlil.Identifier, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
