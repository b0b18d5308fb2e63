package rtlil

// bitKey identifies a single bit of a wire.
type bitKey struct {
	wire *Wire
	bit  int
}

// SigMap is a bit-level signal substitution table: Add records that every
// bit of "from" should be replaced by the corresponding bit of "to", and
// Apply performs that replacement across an arbitrary signal. Constant
// bits of "from" are ignored (constants can't be rewired).
type SigMap struct {
	bits map[bitKey]SigChunk
}

// NewSigMap returns an empty signal map.
func NewSigMap() *SigMap {
	return &SigMap{bits: map[bitKey]SigChunk{}}
}

// Add records the bit-for-bit substitution from -> to. from and to must
// have equal width.
func (sm *SigMap) Add(from, to SigSpec) {
	if from.Width() != to.Width() {
		panic("rtlil: SigMap.Add width mismatch")
	}
	fromBits := expandBits(from)
	toBits := expandBits(to)
	for i, fb := range fromBits {
		if fb.isConst() {
			continue
		}
		sm.bits[bitKey{fb.Wire, fb.Offset}] = toBits[i]
	}
}

// Apply returns sig with every wire-bit that has a recorded substitution
// replaced accordingly.
func (sm *SigMap) Apply(sig SigSpec) SigSpec {
	if len(sm.bits) == 0 {
		return sig
	}
	bits := expandBits(sig)
	out := make(SigSpec, len(bits))
	for i, b := range bits {
		if b.isConst() {
			out[i] = b
			continue
		}
		if r, ok := sm.bits[bitKey{b.Wire, b.Offset}]; ok {
			out[i] = r
			continue
		}
		out[i] = b
	}
	return coalesce(out)
}

// expandBits splits sig into one single-bit chunk per bit.
func expandBits(sig SigSpec) []SigChunk {
	out := make([]SigChunk, 0, sig.Width())
	for _, c := range sig {
		for i := 0; i < c.Width; i++ {
			out = append(out, c.slice(i, 1))
		}
	}
	return out
}
