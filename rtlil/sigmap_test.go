package rtlil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSigMapAddApply(t *testing.T) {
	internal := NewWire("\\g1.y", 1)
	external := NewWire("\\y", 1)

	sm := NewSigMap()
	sm.Add(SigFromWire(internal), SigFromWire(external))

	got := sm.Apply(SigFromWire(internal))
	require.True(t, len(got) == 1 && got[0].Wire == external)
}

func TestSigMapIgnoresConstFrom(t *testing.T) {
	sm := NewSigMap()
	// Adding from a constant is meaningless (constants can't be rewired);
	// Add must not panic and Apply must leave the constant bits alone.
	sm.Add(SigFromConst(ConstFromUint(1, 1)), SigFromConst(ConstFromUint(0, 1)))
	s := SigFromConst(ConstFromUint(1, 1))
	require.Equal(t, s, sm.Apply(s))
}

func TestSigMapPartialBitSubstitution(t *testing.T) {
	internal := NewWire("\\g1.bus", 4)
	external := NewWire("\\ext", 2)

	sm := NewSigMap()
	// only rewire the low 2 bits of internal to external; the high 2 bits
	// stay referring to internal.
	sm.Add(SigFromWire(internal).Extract(0, 2), SigFromWire(external))

	got := sm.Apply(SigFromWire(internal))
	require.Equal(t, 4, got.Width())
	require.Equal(t, external, got[0].Wire)
	require.Equal(t, internal, got[1].Wire)
	require.Equal(t, 2, got[1].Offset)
}
