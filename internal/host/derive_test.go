package host

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/synthkit/techmap/rtlil"
)

func TestDeriveBindsParameterWire(t *testing.T) {
	d := rtlil.NewDesign()
	tpl := rtlil.NewModule("\\BUF")
	a := rtlil.NewWire("\\a", 1)
	a.PortID, a.PortInput = 1, true
	y := rtlil.NewWire("\\y", 1)
	y.PortID, y.PortOutput = 2, true
	w := rtlil.NewWire("\\WIDTH", 8)
	require.NoError(t, tpl.AddWire(a))
	require.NoError(t, tpl.AddWire(y))
	require.NoError(t, tpl.AddWire(w))
	d.AddModule(tpl)

	params := map[rtlil.Identifier]rtlil.Const{"\\WIDTH": rtlil.ConstFromUint(8, 8)}
	derived, err := SubstDeriver{}.Derive(d, "\\BUF", params, nil)
	require.NoError(t, err)
	require.NotEqual(t, rtlil.Identifier("\\BUF"), derived)

	m, ok := d.Module(derived)
	require.True(t, ok)
	require.Len(t, m.Connections, 1)
	require.Equal(t, rtlil.ConstFromUint(8, 8), m.Connections[0].RHS.AsConst())
}

func TestDeriveIgnoresUnreferencedParameter(t *testing.T) {
	d := rtlil.NewDesign()
	tpl := rtlil.NewModule("\\BUF")
	d.AddModule(tpl)

	params := map[rtlil.Identifier]rtlil.Const{"\\UNUSED": rtlil.ConstFromUint(1, 1)}
	derived, err := SubstDeriver{}.Derive(d, "\\BUF", params, nil)
	require.NoError(t, err)

	m, ok := d.Module(derived)
	require.True(t, ok)
	require.Empty(t, m.Connections)
}

func TestDeriveDeduplicatesNames(t *testing.T) {
	d := rtlil.NewDesign()
	tpl := rtlil.NewModule("\\BUF")
	d.AddModule(tpl)

	params := map[rtlil.Identifier]rtlil.Const{}
	first, err := SubstDeriver{}.Derive(d, "\\BUF", params, nil)
	require.NoError(t, err)
	second, err := SubstDeriver{}.Derive(d, "\\BUF", params, nil)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}
