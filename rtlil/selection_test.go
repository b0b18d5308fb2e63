package rtlil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectionFull(t *testing.T) {
	s := FullSelection()
	require.True(t, s.SelectedModule("\\anything"))
	require.True(t, s.SelectedCell("\\anything", "\\cell"))
}

func TestSelectionModuleScoped(t *testing.T) {
	s := ModuleSelection("\\M")
	require.True(t, s.SelectedModule("\\M"))
	require.False(t, s.SelectedModule("\\N"))
	require.True(t, s.SelectedCell("\\M", "\\any"))
	require.False(t, s.SelectedCell("\\N", "\\any"))
}

func TestSelectionCellScoped(t *testing.T) {
	s := &Selection{
		Modules: map[Identifier]bool{"\\M": true},
		Cells:   map[Identifier]map[Identifier]bool{"\\M": {"\\keep": true}},
	}
	require.True(t, s.SelectedCell("\\M", "\\keep"))
	require.False(t, s.SelectedCell("\\M", "\\drop"))
}
