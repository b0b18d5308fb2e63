package rtlil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWireBoolAttr(t *testing.T) {
	w := NewWire("\\w", 1)
	require.False(t, w.BoolAttr("keep"))
	w.SetBoolAttr("keep")
	require.True(t, w.BoolAttr("keep"))
}

func TestWireCloneIndependentAttrs(t *testing.T) {
	w := NewWire("\\w", 1)
	w.SetBoolAttr("keep")
	clone := w.Clone()
	delete(clone.Attributes, "keep")
	require.True(t, w.BoolAttr("keep"))
	require.False(t, clone.BoolAttr("keep"))
}

func TestIdentifierScopes(t *testing.T) {
	require.True(t, Identifier("\\foo").IsPublic())
	require.True(t, Identifier("$foo").IsAuto())
	require.Equal(t, "foo", Identifier("\\foo").Tail())
}

func TestSpecialTag(t *testing.T) {
	tag, ok := SpecialTag("\\a.b._TECHMAP_X_")
	require.True(t, ok)
	require.Equal(t, "_TECHMAP_X_", tag)

	_, ok = SpecialTag("$auto")
	require.False(t, ok)

	tag, ok = SpecialTag("\\_TECHMAP_FAIL_")
	require.True(t, ok)
	require.Equal(t, "_TECHMAP_FAIL_", tag)
}
