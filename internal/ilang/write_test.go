package ilang

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteParseRoundTrip(t *testing.T) {
	d, err := Parse(strings.NewReader(andModule))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, d))

	d2, err := Parse(&buf)
	require.NoError(t, err)

	m1, ok := d.Module("\\and2")
	require.True(t, ok)
	m2, ok := d2.Module("\\and2")
	require.True(t, ok)
	require.Equal(t, m1.WireNames(), m2.WireNames())
	require.Equal(t, m1.CellNames(), m2.CellNames())

	c1, _ := m1.Cell("\\g1")
	c2, _ := m2.Cell("\\g1")
	sig1, _ := c1.Connection("\\A")
	sig2, _ := c2.Connection("\\A")
	require.Equal(t, sig1.Width(), sig2.Width())
}
