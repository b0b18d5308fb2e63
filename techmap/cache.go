package techmap

import (
	"sort"
	"strings"

	"github.com/synthkit/techmap/rtlil"
)

// elaborationCache holds the specialization cache and the elaboration
// memo. It is created fresh for every Techmap/Flatten invocation and
// discarded at the end, never a package-level global, so that stale
// entries never leak across invocations reusing the same module names.
type elaborationCache struct {
	specializations map[string]rtlil.Identifier // (template, canonical params) -> derived name
	elaborated       map[rtlil.Identifier]bool   // template name -> usable
}

func newElaborationCache() *elaborationCache {
	return &elaborationCache{
		specializations: map[string]rtlil.Identifier{},
		elaborated:      map[rtlil.Identifier]bool{},
	}
}

// specializationKey canonicalizes a (template, parameter binding) pair:
// parameter map key order never affects equality.
func specializationKey(template rtlil.Identifier, parameters map[rtlil.Identifier]rtlil.Const, signed map[rtlil.Identifier]bool) string {
	names := make([]string, 0, len(parameters))
	for n := range parameters {
		names = append(names, string(n))
	}
	sort.Strings(names)
	var b strings.Builder
	b.WriteString(string(template))
	for _, n := range names {
		id := rtlil.Identifier(n)
		b.WriteByte(';')
		b.WriteString(n)
		b.WriteByte('=')
		b.WriteString(parameters[id].Key())
		if signed[id] {
			b.WriteString(",signed")
		}
	}
	return b.String()
}

func (c *elaborationCache) getSpecialization(key string) (rtlil.Identifier, bool) {
	n, ok := c.specializations[key]
	return n, ok
}

func (c *elaborationCache) putSpecialization(key string, derived rtlil.Identifier) {
	c.specializations[key] = derived
}

func (c *elaborationCache) isElaborated(tpl rtlil.Identifier) (usable, done bool) {
	u, ok := c.elaborated[tpl]
	return u, ok
}

func (c *elaborationCache) setElaborated(tpl rtlil.Identifier, usable bool) {
	c.elaborated[tpl] = usable
}
