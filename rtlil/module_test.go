package rtlil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildAndGate() *Module {
	m := NewModule("\\AND")
	a := NewWire("\\a", 1)
	a.PortID, a.PortInput = 1, true
	b := NewWire("\\b", 1)
	b.PortID, b.PortInput = 2, true
	y := NewWire("\\y", 1)
	y.PortID, y.PortOutput = 3, true
	_ = m.AddWire(a)
	_ = m.AddWire(b)
	_ = m.AddWire(y)
	c := NewCell("\\g1", "$and")
	c.SetConnection("\\a", SigFromWire(a))
	c.SetConnection("\\b", SigFromWire(b))
	c.SetConnection("\\y", SigFromWire(y))
	_ = m.AddCell(c)
	return m
}

func TestModuleAddWireDuplicate(t *testing.T) {
	m := NewModule("\\M")
	require.NoError(t, m.AddWire(NewWire("\\a", 1)))
	require.Error(t, m.AddWire(NewWire("\\a", 1)))
}

func TestModulePortsContiguous(t *testing.T) {
	m := buildAndGate()
	require.NoError(t, m.CheckPortsContiguous())

	bad := NewModule("\\BAD")
	w := NewWire("\\a", 1)
	w.PortID = 2
	w.PortInput = true
	_ = bad.AddWire(w)
	require.Error(t, bad.CheckPortsContiguous())
}

func TestModuleCloneRebindsWires(t *testing.T) {
	m := buildAndGate()
	clone := m.Clone()

	cell, ok := clone.Cell("\\g1")
	require.True(t, ok)
	sig, ok := cell.Connection("\\a")
	require.True(t, ok)

	origWire, _ := m.Wire("\\a")
	cloneWire, _ := clone.Wire("\\a")
	require.NotSame(t, origWire, cloneWire)
	require.Same(t, cloneWire, sig[0].Wire)
}

func TestModuleRemoveCell(t *testing.T) {
	m := buildAndGate()
	m.RemoveCell("\\g1")
	_, ok := m.Cell("\\g1")
	require.False(t, ok)
	require.Empty(t, m.CellNames())
}
