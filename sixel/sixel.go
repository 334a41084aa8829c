/*
Package sixel decodes the body of a DEC sixel device control string into a
row-major RGB pixel buffer.

The body is a run of printable bytes. Bytes in the range '?' to '~' paint a
vertical strip of six pixels at the cursor; '"' introduces the raster
attributes (aspect ratio and image extent), '#' defines or selects a palette
register, '!' sets a repeat count for the next strip, '-' moves the cursor
to the start of the next six pixel band and '$' returns it to the start of
the current band.

Decoding never fails. Malformed sub-commands are abandoned and the byte that
ended them is dispatched again, writes outside the image are dropped, and
anything else that does not fit the grammar is ignored and counted in
Diagnostics.
*/
package sixel

const (
	bandHeight = 6
	stripBias  = 0x3f

	introHeader = '"'
	introColor  = '#'
	introRepeat = '!'

	cmdNewBand        = '-'
	cmdCarriageReturn = '$'

	separator = ';'

	drawFirst = '?'
	drawLast  = '~'
)

const (
	// MaxPaletteSize bounds the number of colour registers. Register
	// numbers at or above it wrap around.
	MaxPaletteSize = 1024

	// DefaultMaxPixels is the largest image, in pixels, a Decoder
	// allocates unless told otherwise.
	DefaultMaxPixels = 4096 * 4096

	maxExtent = 1 << 16
	maxRepeat = 1 << 16
	maxLevel  = 100
)

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isDrawing(b byte) bool { return b >= drawFirst && b <= drawLast }

// accumulate appends decimal digit b to v, saturating at limit.
func accumulate(v int, b byte, limit int) int {
	v = v*10 + int(b-'0')
	if v > limit {
		return limit
	}
	return v
}
