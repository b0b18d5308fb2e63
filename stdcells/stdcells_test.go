package stdcells

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/synthkit/techmap/rtlil"
)

func TestLoadParsesAllGates(t *testing.T) {
	d, err := Load()
	require.NoError(t, err)

	want := []string{"\\NOT", "\\AND", "\\NAND", "\\OR", "\\NOR", "\\XOR", "\\XNOR", "\\MUX", "\\DMUX", "\\DFF"}
	for _, name := range want {
		m, ok := d.Module(rtlil.Identifier(name))
		require.True(t, ok, "missing module %s", name)
		require.NotEmpty(t, m.CellNames())
	}
}

func TestAndTemplateShape(t *testing.T) {
	d, err := Load()
	require.NoError(t, err)

	m, ok := d.Module(rtlil.Identifier("\\AND"))
	require.True(t, ok)

	a, ok := m.Wire(rtlil.Identifier("\\a"))
	require.True(t, ok)
	require.True(t, a.PortInput)

	out, ok := m.Wire(rtlil.Identifier("\\out"))
	require.True(t, ok)
	require.True(t, out.PortOutput)

	cellNames := m.CellNames()
	require.Len(t, cellNames, 1)
	c, _ := m.Cell(cellNames[0])
	require.Equal(t, "$_AND_", string(c.Type))
}

func TestDmuxTemplateHasTwoOutputs(t *testing.T) {
	d, err := Load()
	require.NoError(t, err)

	m, ok := d.Module(rtlil.Identifier("\\DMUX"))
	require.True(t, ok)

	a, ok := m.Wire(rtlil.Identifier("\\a"))
	require.True(t, ok)
	require.True(t, a.PortOutput)

	b, ok := m.Wire(rtlil.Identifier("\\b"))
	require.True(t, ok)
	require.True(t, b.PortOutput)

	require.Len(t, m.CellNames(), 3)
}
