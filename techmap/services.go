package techmap

import (
	"io"

	"github.com/synthkit/techmap/rtlil"
)

// Deriver realizes the host toolchain's Module::derive: producing a
// parameter-specialized clone of a template module, registered under a
// fresh name in the map design, and returning that name.
type Deriver interface {
	Derive(mapDesign *rtlil.Design, template rtlil.Identifier, parameters map[rtlil.Identifier]rtlil.Const, signed map[rtlil.Identifier]bool) (rtlil.Identifier, error)
}

// PassRunner realizes the host toolchain's Pass::call: dispatching an
// arbitrary named subpass by its command string against a design already
// scoped by the caller's selection push.
type PassRunner interface {
	Call(design *rtlil.Design, command string) error
}

// FrontEnd populates a design from a source stream under some dialect (the
// "ilang" dialect is the only one this module implements itself; others are
// free to be registered by callers, but Verilog/VHDL parsing is explicitly
// out of scope).
type FrontEnd interface {
	Load(r io.Reader, filename string) (*rtlil.Design, error)
}

// Logger is the minimal structured-logging surface the engine needs.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Services bundles the external collaborators the engine consumes. All
// invocations of Techmap/Flatten receive one; defaults live in
// internal/host and are wired in by cmd/techmap.
type Services struct {
	Deriver    Deriver
	PassRunner PassRunner
	FrontEnds  map[string]FrontEnd // dialect name -> frontend
	Logger     Logger
}
