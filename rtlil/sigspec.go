package rtlil

// SigChunk is either a literal constant slice or a reference to a
// contiguous bit range of a Wire. Exactly one of Wire or Data is set: a
// wire-reference chunk has Wire != nil and Width bits starting at Offset; a
// constant chunk has Wire == nil and len(Data) == Width.
type SigChunk struct {
	Wire   *Wire
	Offset int
	Width  int
	Data   Const
}

// constChunk builds a constant chunk from c.
func constChunk(c Const) SigChunk {
	return SigChunk{Data: c, Width: len(c)}
}

// wireChunk builds a chunk referencing width bits of w starting at offset.
func wireChunk(w *Wire, offset, width int) SigChunk {
	return SigChunk{Wire: w, Offset: offset, Width: width}
}

func (c SigChunk) isConst() bool { return c.Wire == nil }

// slice returns the sub-chunk covering [lo, lo+n) of c.
func (c SigChunk) slice(lo, n int) SigChunk {
	if c.isConst() {
		return constChunk(c.Data[lo : lo+n])
	}
	return wireChunk(c.Wire, c.Offset+lo, n)
}

// SigSpec is an ordered concatenation of chunks; chunk 0 holds the least
// significant bits of the signal.
type SigSpec []SigChunk

// SigFromConst wraps a constant as a single-chunk signal.
func SigFromConst(c Const) SigSpec {
	if len(c) == 0 {
		return nil
	}
	return SigSpec{constChunk(c)}
}

// SigFromWire wraps the whole of w as a signal.
func SigFromWire(w *Wire) SigSpec {
	if w.Width == 0 {
		return nil
	}
	return SigSpec{wireChunk(w, 0, w.Width)}
}

// Width is the sum of the signal's chunk widths.
func (s SigSpec) Width() int {
	n := 0
	for _, c := range s {
		n += c.Width
	}
	return n
}

// IsFullyConst reports whether every chunk of s is a constant chunk.
func (s SigSpec) IsFullyConst() bool {
	for _, c := range s {
		if !c.isConst() {
			return false
		}
	}
	return true
}

// AsConst returns the constant value of s. s must be fully constant.
func (s SigSpec) AsConst() Const {
	out := make(Const, 0, s.Width())
	for _, c := range s {
		out = append(out, c.Data...)
	}
	return out
}

// Clone returns an independent copy of s (chunks copied by value; wire
// pointers are shared, as wires are identified by name within a module).
func (s SigSpec) Clone() SigSpec {
	out := make(SigSpec, len(s))
	copy(out, s)
	return out
}

// Append returns s with o's chunks appended as the new, more-significant
// bits.
func (s SigSpec) Append(o SigSpec) SigSpec {
	out := make(SigSpec, 0, len(s)+len(o))
	out = append(out, s...)
	out = append(out, o...)
	return coalesce(out)
}

// Remove returns s with the n bits starting at bit position lo removed.
func (s SigSpec) Remove(lo, n int) SigSpec {
	if n <= 0 {
		return s
	}
	hi := lo + n
	var out SigSpec
	pos := 0
	for _, c := range s {
		cLo, cHi := pos, pos+c.Width
		pos = cHi
		switch {
		case cHi <= lo || cLo >= hi:
			// entirely outside the removed range
			out = append(out, c)
		case cLo >= lo && cHi <= hi:
			// entirely inside the removed range: drop it
		default:
			// partial overlap: keep the non-overlapping parts
			if cLo < lo {
				out = append(out, c.slice(0, lo-cLo))
			}
			if cHi > hi {
				out = append(out, c.slice(hi-cLo, cHi-hi))
			}
		}
	}
	return coalesce(out)
}

// Extract returns the n bits of s starting at bit position lo, without
// modifying s.
func (s SigSpec) Extract(lo, n int) SigSpec {
	if n <= 0 {
		return nil
	}
	hi := lo + n
	var out SigSpec
	pos := 0
	for _, c := range s {
		cLo, cHi := pos, pos+c.Width
		pos = cHi
		if cHi <= lo || cLo >= hi {
			continue
		}
		start := 0
		if lo > cLo {
			start = lo - cLo
		}
		end := c.Width
		if hi < cHi {
			end = hi - cLo
		}
		out = append(out, c.slice(start, end-start))
	}
	return coalesce(out)
}

// ZeroExtend returns s widened to width n by appending S0 bits. It panics if
// s is already wider than n.
func (s SigSpec) ZeroExtend(n int) SigSpec {
	w := s.Width()
	if w > n {
		panic("rtlil: ZeroExtend to narrower width")
	}
	if w == n {
		return s
	}
	return s.Append(SigFromConst(make(Const, n-w)))
}

// coalesce merges adjacent chunks that reference contiguous bits of the
// same wire, or adjacent constant chunks, to keep signals tidy. It never
// changes the represented value.
func coalesce(s SigSpec) SigSpec {
	if len(s) < 2 {
		return s
	}
	out := make(SigSpec, 0, len(s))
	out = append(out, s[0])
	for _, c := range s[1:] {
		last := &out[len(out)-1]
		switch {
		case last.isConst() && c.isConst():
			last.Data = append(last.Data, c.Data...)
			last.Width += c.Width
		case !last.isConst() && !c.isConst() && last.Wire == c.Wire && last.Offset+last.Width == c.Offset:
			last.Width += c.Width
		default:
			out = append(out, c)
		}
	}
	return out
}
