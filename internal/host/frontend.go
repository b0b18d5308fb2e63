package host

import (
	"io"

	"github.com/synthkit/techmap/internal/ilang"
	"github.com/synthkit/techmap/rtlil"
)

// IlangFrontEnd adapts internal/ilang's parser to techmap.FrontEnd.
type IlangFrontEnd struct{}

func (IlangFrontEnd) Load(r io.Reader, filename string) (*rtlil.Design, error) {
	return ilang.Parse(r)
}
