package rtlil

// Cell is an instance of a module or primitive inside another module.
// Connections are kept in insertion order so that iteration over a cell's
// ports is deterministic, matching the observable ordering contract
// described for the mapping engine.
type Cell struct {
	Name             Identifier
	Type             Identifier
	Parameters       map[Identifier]Const
	SignedParameters map[Identifier]bool

	connections map[Identifier]SigSpec
	connOrder   []Identifier
}

// NewCell creates an empty cell of the given type.
func NewCell(name, typ Identifier) *Cell {
	return &Cell{
		Name:             name,
		Type:             typ,
		Parameters:       map[Identifier]Const{},
		SignedParameters: map[Identifier]bool{},
		connections:      map[Identifier]SigSpec{},
	}
}

// SetConnection connects port to sig, recording insertion order the first
// time port is seen.
func (c *Cell) SetConnection(port Identifier, sig SigSpec) {
	if _, ok := c.connections[port]; !ok {
		c.connOrder = append(c.connOrder, port)
	}
	c.connections[port] = sig
}

// Connection returns the signal connected to port, if any.
func (c *Cell) Connection(port Identifier) (SigSpec, bool) {
	s, ok := c.connections[port]
	return s, ok
}

// ConnectionNames returns the cell's port names in insertion order.
func (c *Cell) ConnectionNames() []Identifier {
	out := make([]Identifier, len(c.connOrder))
	copy(out, c.connOrder)
	return out
}

// Connections returns the cell's connections as an ordered key/value pair
// slice.
func (c *Cell) Connections() []struct {
	Port Identifier
	Sig  SigSpec
} {
	out := make([]struct {
		Port Identifier
		Sig  SigSpec
	}, len(c.connOrder))
	for i, p := range c.connOrder {
		out[i].Port = p
		out[i].Sig = c.connections[p]
	}
	return out
}

// Clone returns an independent deep copy of c.
func (c *Cell) Clone() *Cell {
	n := &Cell{
		Name:             c.Name,
		Type:             c.Type,
		Parameters:       make(map[Identifier]Const, len(c.Parameters)),
		SignedParameters: make(map[Identifier]bool, len(c.SignedParameters)),
		connections:      make(map[Identifier]SigSpec, len(c.connections)),
		connOrder:        append([]Identifier(nil), c.connOrder...),
	}
	for k, v := range c.Parameters {
		vv := make(Const, len(v))
		copy(vv, v)
		n.Parameters[k] = vv
	}
	for k, v := range c.SignedParameters {
		n.SignedParameters[k] = v
	}
	for k, v := range c.connections {
		n.connections[k] = v.Clone()
	}
	return n
}
