package rtlil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConstCommandRoundTrip(t *testing.T) {
	cases := []string{"proc", "opt_clean", "a", ""}
	for _, s := range cases {
		c := ConstFromCommand(s)
		require.Equal(t, s, c.Command())
	}
}

func TestConstBytesDropsZeroGroups(t *testing.T) {
	// "p\x00c" packed 8-bits-per-byte, reversed: a zero byte group is
	// dropped entirely rather than just trimmed from an edge.
	c := ConstFromCommand("pc")
	// splice a zero byte group into the middle of the bit vector.
	mid := append(Const{}, c[:8]...)
	mid = append(mid, make(Const, 8)...)
	mid = append(mid, c[8:]...)
	require.Equal(t, "pc", mid.Command())
}

func TestConstFullyDefined(t *testing.T) {
	require.True(t, Const{S0, S1, S1}.FullyDefined())
	require.False(t, Const{S0, Sx}.FullyDefined())
}

func TestConstBool(t *testing.T) {
	require.True(t, ConstFromUint(1, 4).Bool())
	require.False(t, ConstFromUint(0, 4).Bool())
}
