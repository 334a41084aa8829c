package sixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeStripBounds(t *testing.T) {
	assert.Equal(t, Strip{false, false, false, false, false, false}, DecodeStrip('?'))
	assert.Equal(t, Strip{true, true, true, true, true, true}, DecodeStrip('~'))
	assert.Equal(t, Strip{true, false, false, false, false, false}, DecodeStrip('@'))
	assert.Equal(t, Strip{false, false, false, false, false, true}, DecodeStrip('_'))
}

func TestDecodeStripBijective(t *testing.T) {
	seen := make(map[Strip]byte)
	for b := byte(drawFirst); b <= drawLast; b++ {
		strip := DecodeStrip(b)
		assert.Equal(t, b-stripBias, strip.Bits(), "byte %q", b)

		prev, dup := seen[strip]
		assert.False(t, dup, "bytes %q and %q share a mask", prev, b)
		seen[strip] = b
	}
	assert.Len(t, seen, 64)
}
