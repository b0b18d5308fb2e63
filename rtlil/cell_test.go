package rtlil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCellConnectionOrder(t *testing.T) {
	c := NewCell("\\c1", "\\T")
	c.SetConnection("\\b", nil)
	c.SetConnection("\\a", nil)
	c.SetConnection("\\b", SigFromConst(ConstFromUint(1, 1)))
	require.Equal(t, []Identifier{"\\b", "\\a"}, c.ConnectionNames())
}

func TestCellCloneDeepCopiesParameters(t *testing.T) {
	c := NewCell("\\c1", "\\T")
	c.Parameters["\\WIDTH"] = ConstFromUint(8, 8)
	clone := c.Clone()
	clone.Parameters["\\WIDTH"][0] = S1
	require.NotEqual(t, c.Parameters["\\WIDTH"][0], clone.Parameters["\\WIDTH"][0])
}
