// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package rtlil provides the netlist data model consumed by the techmap
// package: modules, cells, wires and signals, along with the small set of
// collaborators (selections, signal maps) the mapping engine needs to
// manipulate them.
package rtlil

import "strings"

// Identifier is a symbolic name for a wire, cell or module. Its first
// character distinguishes a user-scoped identifier (leading '\') from an
// auto-generated one (leading '$').
type Identifier string

// IsPublic reports whether id is user-scoped (leading '\').
func (id Identifier) IsPublic() bool {
	return len(id) > 0 && id[0] == '\\'
}

// IsAuto reports whether id is auto-generated (leading '$').
func (id Identifier) IsAuto() bool {
	return len(id) > 0 && id[0] == '$'
}

// Tail returns id without its leading scope character ('\' or '$'). If id
// has no scope character, Tail returns id unchanged.
func (id Identifier) Tail() string {
	s := string(id)
	if s == "" {
		return s
	}
	switch s[0] {
	case '\\', '$':
		return s[1:]
	default:
		return s
	}
}

// String implements fmt.Stringer.
func (id Identifier) String() string {
	return string(id)
}

// EscapeID converts a plain name into a user-scoped identifier, escaping it
// with a leading backslash unless it is already scoped.
func EscapeID(name string) Identifier {
	if name == "" {
		return ""
	}
	if name[0] == '\\' || name[0] == '$' {
		return Identifier(name)
	}
	return Identifier("\\" + name)
}

// SpecialTag returns the _TECHMAP_* tag carried by a wire name, and whether
// the name carries one at all. Per the special-wire scanning rule, names
// beginning with '$' never carry a tag; for all other names the tag is the
// segment following the last '.' (or, if there is no dot past position 0,
// the name with its leading scope character stripped).
func SpecialTag(name Identifier) (string, bool) {
	s := string(name)
	if s == "" || s[0] == '$' {
		return "", false
	}
	tail := s[1:]
	if i := strings.LastIndexByte(tail, '.'); i >= 0 {
		tail = tail[i+1:]
	}
	if strings.HasPrefix(tail, "_TECHMAP_") {
		return tail, true
	}
	return "", false
}
