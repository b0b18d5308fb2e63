package host

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/synthkit/techmap/rtlil"
)

// SubstDeriver is the default techmap.Deriver: it clones a template module
// under a fresh, parameter-qualified name and binds each parameter to the
// template's same-named free wire, if one exists, via a top-level constant
// connection. Templates that never reference a parameter by name simply
// ignore it, matching how an HDL parameter with no use inside a module body
// has no structural effect.
type SubstDeriver struct{}

// Derive implements techmap.Deriver.
func (SubstDeriver) Derive(mapDesign *rtlil.Design, template rtlil.Identifier, parameters map[rtlil.Identifier]rtlil.Const, signed map[rtlil.Identifier]bool) (rtlil.Identifier, error) {
	tpl, ok := mapDesign.Module(template)
	if !ok {
		return "", errors.Errorf("techmap: cannot derive unknown template %q", template)
	}

	clone := tpl.Clone()
	clone.Name = specializedName(template, parameters)
	for suffix := 0; ; suffix++ {
		name := clone.Name
		if suffix > 0 {
			name = rtlil.Identifier(string(clone.Name) + strings.Repeat("_", suffix))
		}
		if _, exists := mapDesign.Module(name); !exists {
			clone.Name = name
			break
		}
	}

	for _, pname := range sortedParamNames(parameters) {
		w, ok := clone.Wire(rtlil.EscapeID(pname.Tail()))
		if !ok || w.PortID > 0 {
			continue
		}
		clone.Connections = append(clone.Connections, rtlil.SigSig{
			LHS: rtlil.SigFromWire(w),
			RHS: rtlil.SigFromConst(parameters[pname]),
		})
	}

	mapDesign.AddModule(clone)
	return clone.Name, nil
}

func specializedName(template rtlil.Identifier, parameters map[rtlil.Identifier]rtlil.Const) rtlil.Identifier {
	var b strings.Builder
	b.WriteString(string(template))
	b.WriteString("$")
	for i, pname := range sortedParamNames(parameters) {
		if i > 0 {
			b.WriteString("_")
		}
		b.WriteString(pname.Tail())
		b.WriteString("=")
		b.WriteString(parameters[pname].String())
	}
	return rtlil.Identifier(b.String())
}

func sortedParamNames(parameters map[rtlil.Identifier]rtlil.Const) []rtlil.Identifier {
	names := make([]rtlil.Identifier, 0, len(parameters))
	for k := range parameters {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
