package rtlil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSigSpecWidthAndConst(t *testing.T) {
	s := SigFromConst(ConstFromUint(0b101, 3))
	require.Equal(t, 3, s.Width())
	require.True(t, s.IsFullyConst())
	require.Equal(t, ConstFromUint(0b101, 3), s.AsConst())
}

func TestSigSpecRemoveSuffix(t *testing.T) {
	w := NewWire("\\w", 8)
	s := SigFromWire(w)
	// truncate from the right (as width reconciliation does): keep the low
	// 4 bits, drop the high 4.
	s = s.Remove(4, 4)
	require.Equal(t, 4, s.Width())
	require.Equal(t, 0, s[0].Offset)
	require.Equal(t, 4, s[0].Width)
}

func TestSigSpecRemoveMiddle(t *testing.T) {
	w := NewWire("\\w", 8)
	s := SigFromWire(w)
	s = s.Remove(2, 2)
	require.Equal(t, 6, s.Width())
}

func TestSigSpecZeroExtend(t *testing.T) {
	w := NewWire("\\w", 4)
	s := SigFromWire(w).ZeroExtend(8)
	require.Equal(t, 8, s.Width())
	ext := s.Extract(4, 4)
	require.True(t, ext.IsFullyConst())
	require.False(t, ext.AsConst().Bool())
}

func TestSigSpecExtractAcrossChunks(t *testing.T) {
	w1 := NewWire("\\a", 4)
	w2 := NewWire("\\b", 4)
	s := SigFromWire(w1).Append(SigFromWire(w2))
	require.Equal(t, 8, s.Width())
	mid := s.Extract(2, 4)
	require.Equal(t, 4, mid.Width())
}
