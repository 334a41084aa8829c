package sixel

// Strip is the vertical six pixel mask carried by one drawing byte. Index 0
// is the top row of the band.
type Strip [bandHeight]bool

// DecodeStrip maps a drawing byte ('?' to '~') to its pixel mask.
func DecodeStrip(b byte) Strip {
	bits := b - stripBias
	var strip Strip
	for i := range strip {
		strip[i] = bits&(1<<i) != 0
	}
	return strip
}

// Bits packs the mask back into the low six bits.
func (strip Strip) Bits() byte {
	var bits byte
	for i, set := range strip {
		if set {
			bits |= 1 << i
		}
	}
	return bits
}
