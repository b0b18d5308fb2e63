package host

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/synthkit/techmap/rtlil"
)

func TestRegistryCallsRegisteredPass(t *testing.T) {
	r := NewRegistry()
	d := rtlil.NewDesign()
	require.NoError(t, r.Call(d, "check"))
}

func TestRegistryRejectsUnknownPass(t *testing.T) {
	r := NewRegistry()
	d := rtlil.NewDesign()
	require.Error(t, r.Call(d, "frobnicate"))
}

func TestOptCleanRemovesUnusedWire(t *testing.T) {
	d := rtlil.NewDesign()
	m := rtlil.NewModule("\\top")
	a := rtlil.NewWire("\\a", 1)
	a.PortID, a.PortInput = 1, true
	require.NoError(t, m.AddWire(a))
	unused := rtlil.NewWire("\\unused", 1)
	require.NoError(t, m.AddWire(unused))
	d.AddModule(m)

	r := NewRegistry()
	require.NoError(t, r.Call(d, "opt_clean"))

	_, ok := m.Wire("\\unused")
	require.False(t, ok)
	_, ok = m.Wire("\\a")
	require.True(t, ok)
}
