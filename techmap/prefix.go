package techmap

import (
	"github.com/pkg/errors"
	"github.com/synthkit/techmap/rtlil"
)

// ApplyPrefix applies the hygienic renaming rule to id: a user-scoped
// identifier keeps its tail under the cell's prefix; an auto-generated one
// is renamed into the "$techmap" namespace so it can never collide with a
// wire the host module already has.
func ApplyPrefix(prefix, id rtlil.Identifier) rtlil.Identifier {
	if id.IsPublic() {
		return rtlil.Identifier(string(prefix) + "." + id.Tail())
	}
	return rtlil.Identifier("$techmap" + string(prefix) + "." + string(id))
}

// PrefixSignal rewrites every wire-referencing chunk of sig by applying
// ApplyPrefix to its wire's name and rebinding the chunk to the
// correspondingly-named wire in host. Constant chunks pass through
// unchanged. It is a fatal error for the renamed wire not to already exist
// in host, meaning the signal refers to a wire that was never cloned.
func PrefixSignal(prefix rtlil.Identifier, sig rtlil.SigSpec, host *rtlil.Module) (rtlil.SigSpec, error) {
	out := make(rtlil.SigSpec, len(sig))
	for i, c := range sig {
		if c.Wire == nil {
			out[i] = c
			continue
		}
		newName := ApplyPrefix(prefix, c.Wire.Name)
		w, ok := host.Wire(newName)
		if !ok {
			return nil, errors.Errorf("techmap: prefixed wire %q not found in module %q (clone target missing)", newName, host.Name)
		}
		out[i] = c
		out[i].Wire = w
	}
	return out, nil
}
