package ilang

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/synthkit/techmap/rtlil"
)

const andModule = `
module \and2
  wire width 1 input 1 \a
  wire width 1 input 2 \b
  wire width 1 output 3 \y
  cell \AND2 \g1
    connect \A \a
    connect \B \b
    connect \Y \y
  end
end
`

func TestParseSimpleModule(t *testing.T) {
	d, err := Parse(strings.NewReader(andModule))
	require.NoError(t, err)
	m, ok := d.Module("\\and2")
	require.True(t, ok)
	require.ElementsMatch(t, []rtlil.Identifier{"\\a", "\\b", "\\y"}, m.WireNames())
	require.NoError(t, m.CheckPortsContiguous())

	c, ok := m.Cell("\\g1")
	require.True(t, ok)
	require.Equal(t, rtlil.Identifier("\\AND2"), c.Type)
	sig, ok := c.Connection("\\A")
	require.True(t, ok)
	require.Equal(t, 1, sig.Width())
}

func TestParseSlicesAndConcat(t *testing.T) {
	src := `
module \m
  wire width 4 input 1 \x
  wire width 1 output 2 \y
  connect \y {\x[3:2], \x[1:0]}
end
`
	d, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	m, _ := d.Module("\\m")
	require.Len(t, m.Connections, 1)
	require.Equal(t, 4, m.Connections[0].RHS.Width())
}

func TestParseSizedConstant(t *testing.T) {
	src := `
module \m
  wire width 8 output 1 \y
  connect \y 8'b00001010
end
`
	d, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	m, _ := d.Module("\\m")
	rhs := m.Connections[0].RHS
	require.True(t, rhs.IsFullyConst())
	c := rhs.AsConst()
	require.Equal(t, 8, len(c))
	require.True(t, c[1] == rtlil.S1)
	require.True(t, c[3] == rtlil.S1)
}

func TestParseAttributeString(t *testing.T) {
	src := `
module \m
  attribute \techmap_celltype "$and $nand"
end
`
	d, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	m, _ := d.Module("\\m")
	v, ok := m.TechmapCelltype()
	require.True(t, ok)
	require.Equal(t, "$and $nand", v)
}

func TestParseRejectsUnknownWire(t *testing.T) {
	src := `
module \m
  connect \y \x
end
`
	_, err := Parse(strings.NewReader(src))
	require.Error(t, err)
}
