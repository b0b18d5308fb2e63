package rtlil

// Wire is a named bit-vector. PortID, when greater than zero, is the
// wire's 1-based positional index among the ports of its module.
type Wire struct {
	Name        Identifier
	Width       int
	Attributes  map[string]Const
	PortID      int
	PortInput   bool
	PortOutput  bool
}

// NewWire creates a width-bit wire named name.
func NewWire(name Identifier, width int) *Wire {
	if width < 1 {
		width = 1
	}
	return &Wire{Name: name, Width: width, Attributes: map[string]Const{}}
}

// IsPort reports whether w occupies a positional port slot.
func (w *Wire) IsPort() bool {
	return w.PortID > 0
}

// BoolAttr reports whether attribute name is set on w to a value with at
// least one bit set to 1 (see Const.Bool; x/z bits are not checked).
func (w *Wire) BoolAttr(name string) bool {
	c, ok := w.Attributes[name]
	return ok && c.Bool()
}

// SetBoolAttr sets attribute name on w to the single-bit constant 1.
func (w *Wire) SetBoolAttr(name string) {
	if w.Attributes == nil {
		w.Attributes = map[string]Const{}
	}
	w.Attributes[name] = ConstFromBool(true)
}

// Clone returns an independent copy of w (same name; attributes deep
// copied).
func (w *Wire) Clone() *Wire {
	n := &Wire{
		Name:       w.Name,
		Width:      w.Width,
		PortID:     w.PortID,
		PortInput:  w.PortInput,
		PortOutput: w.PortOutput,
		Attributes: make(map[string]Const, len(w.Attributes)),
	}
	for k, v := range w.Attributes {
		vv := make(Const, len(v))
		copy(vv, v)
		n.Attributes[k] = vv
	}
	return n
}
