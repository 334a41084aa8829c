package sixel

import (
	"io"

	"go.uber.org/zap"

	"github.com/cam-per/sixel/graphics"
)

type state uint8

const (
	stateDefault state = iota
	stateHeader
	stateColor
	stateRepeat
)

func (s state) String() string {
	switch s {
	case stateDefault:
		return "default"
	case stateHeader:
		return "header"
	case stateColor:
		return "color"
	case stateRepeat:
		return "repeat"
	}
	return "unknown"
}

// A byte that ends a sub-command is dispatched once more in the default
// state, so no byte needs more than two steps.
const maxDispatchSteps = 2

// Diagnostics counts input the decoder recovered from.
type Diagnostics struct {
	// Unhandled bytes matched no command and were dropped.
	Unhandled int
	// Clamped drawing bytes found the cursor at the right edge and were
	// painted at column 0 of the same band.
	Clamped int
	// InvalidColor commands were malformed and dropped.
	InvalidColor int
	// Oversize headers declared more than the pixel limit; the image was
	// left empty.
	Oversize int
}

// Clean reports whether nothing had to be recovered from.
func (diag Diagnostics) Clean() bool { return diag == Diagnostics{} }

type Option func(*Decoder)

// WithLogger routes recovery events to logger at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(decoder *Decoder) {
		if logger != nil {
			decoder.logger = logger
		}
	}
}

// WithMaxPixels bounds the image size a header may allocate.
func WithMaxPixels(n int) Option {
	return func(decoder *Decoder) {
		if n > 0 {
			decoder.maxPixels = n
		}
	}
}

// Decoder is the sixel state machine. It is fed one byte at a time through
// WriteByte or Write and must be driven by a single goroutine.
type Decoder struct {
	rgb     []byte
	palette []Color
	color   int

	xpos, ypos    int
	width, height int
	repeat        int

	aspectNumerator   int
	aspectDenominator int

	state  state
	header HeaderParser
	parser ColorParser

	diag      Diagnostics
	maxPixels int
	logger    *zap.Logger
}

// NewDecoder returns a decoder that expects the body to open with raster
// attributes.
func NewDecoder(opts ...Option) *Decoder {
	decoder := &Decoder{
		palette:   make([]Color, 0, 256),
		maxPixels: DefaultMaxPixels,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(decoder)
	}
	decoder.reset()
	return decoder
}

func (decoder *Decoder) reset() {
	decoder.rgb = nil
	decoder.palette = decoder.palette[:0]
	decoder.color = 0
	decoder.xpos, decoder.ypos = 0, 0
	decoder.width, decoder.height = 0, 0
	decoder.repeat = 0
	decoder.header = NewHeaderParser()
	decoder.aspectNumerator = decoder.header.AspectNumerator
	decoder.aspectDenominator = decoder.header.AspectDenominator
	decoder.state = stateHeader
	decoder.diag = Diagnostics{}
}

// Decode feeds everything read from r to a new decoder.
func Decode(r io.Reader, opts ...Option) (*Decoder, error) {
	decoder := NewDecoder(opts...)
	if _, err := io.Copy(decoder, r); err != nil {
		return nil, err
	}
	return decoder, nil
}

// WriteByte implements io.ByteWriter. It never fails.
func (decoder *Decoder) WriteByte(b byte) error {
	decoder.put(b)
	return nil
}

// Write implements io.Writer. It never fails.
func (decoder *Decoder) Write(p []byte) (int, error) {
	for _, b := range p {
		decoder.put(b)
	}
	return len(p), nil
}

func (decoder *Decoder) put(b byte) {
	for i := 0; i < maxDispatchSteps; i++ {
		if !decoder.step(b) {
			return
		}
	}
}

// step applies b to the current state and reports whether a sub-command
// ended on b, in which case b must be dispatched again.
func (decoder *Decoder) step(b byte) bool {
	switch decoder.state {
	case stateHeader:
		if !decoder.header.Put(b) {
			return false
		}
		decoder.allocate()
		decoder.state = stateDefault
		return true

	case stateColor:
		result := decoder.parser.Put(b)
		switch result.Outcome {
		case ColorPending:
			return false
		case ColorNew:
			decoder.define(result.Slot, result.Color)
		case ColorSelect:
			decoder.color = result.Slot % MaxPaletteSize
		case ColorInvalid:
			decoder.diag.InvalidColor++
			decoder.logger.Debug("sixel: invalid color command", zap.Uint8("byte", b))
		}
		decoder.state = stateDefault
		return true

	case stateRepeat:
		if isDigit(b) {
			decoder.repeat = accumulate(decoder.repeat, b, maxRepeat)
			return false
		}
	}

	decoder.dispatch(b)
	return false
}

func (decoder *Decoder) dispatch(b byte) {
	switch {
	case b == introHeader:
		decoder.header = NewHeaderParser()
		decoder.header.Put(b)
		decoder.state = stateHeader
	case b == introColor:
		decoder.parser = ColorParser{}
		decoder.state = stateColor
	case b == introRepeat:
		decoder.repeat = 0
		decoder.state = stateRepeat
	case b == cmdNewBand:
		decoder.xpos = 0
		decoder.ypos += bandHeight
	case b == cmdCarriageReturn:
		decoder.xpos = 0
	case isDrawing(b):
		decoder.paint(b)
	default:
		decoder.diag.Unhandled++
		decoder.logger.Debug("sixel: unhandled byte",
			zap.Uint8("byte", b),
			zap.Stringer("state", decoder.state))
	}
}

func (decoder *Decoder) allocate() {
	decoder.aspectNumerator = decoder.header.AspectNumerator
	decoder.aspectDenominator = decoder.header.AspectDenominator

	w, h := decoder.header.Width, decoder.header.Height
	if w > 0 && h > decoder.maxPixels/w {
		decoder.diag.Oversize++
		decoder.logger.Debug("sixel: raster exceeds pixel limit",
			zap.Int("width", w),
			zap.Int("height", h),
			zap.Int("limit", decoder.maxPixels))
		w, h = 0, 0
	}
	decoder.width, decoder.height = w, h
	decoder.rgb = make([]byte, w*h*3)
	decoder.xpos, decoder.ypos = 0, 0
}

func (decoder *Decoder) define(slot int, c Color) {
	slot %= MaxPaletteSize
	decoder.grow(slot)
	decoder.palette[slot] = c
	decoder.color = slot
}

// grow extends the palette with black entries until slot exists.
func (decoder *Decoder) grow(slot int) {
	for len(decoder.palette) <= slot {
		decoder.palette = append(decoder.palette, Color{})
	}
}

func (decoder *Decoder) currentColor() Color {
	decoder.grow(decoder.color)
	return decoder.palette[decoder.color]
}

func (decoder *Decoder) paint(b byte) {
	if decoder.xpos == decoder.width {
		decoder.diag.Clamped++
		decoder.logger.Debug("sixel: cursor at right edge, restarting band",
			zap.Int("xpos", decoder.xpos),
			zap.Int("ypos", decoder.ypos))
		decoder.xpos = 0
		decoder.state = stateDefault
	}

	c := decoder.currentColor()
	strip := DecodeStrip(b)

	count := decoder.repeat
	if count < 1 {
		count = 1
	}
	// columns past the row end land on the following rows of the buffer
	for i := 0; i < count; i++ {
		decoder.paintStrip(decoder.ypos*decoder.width+decoder.xpos, decoder.width, strip, c)
		decoder.xpos++
	}

	decoder.repeat = 0
	decoder.state = stateDefault
}

// paintStrip writes c to every set pixel of strip, starting at pixel offset
// and stepping by stride pixels. Pixels past the buffer are skipped.
func (decoder *Decoder) paintStrip(offset, stride int, strip Strip, c Color) {
	pixels := len(decoder.rgb) / 3
	for i, set := range strip {
		p := offset + i*stride
		if p >= pixels {
			return
		}
		if !set {
			continue
		}
		decoder.rgb[p*3+0] = c.R
		decoder.rgb[p*3+1] = c.G
		decoder.rgb[p*3+2] = c.B
	}
}

// Width returns the declared image width in pixels.
func (decoder *Decoder) Width() int { return decoder.width }

// Height returns the declared image height in pixels.
func (decoder *Decoder) Height() int { return decoder.height }

// Aspect returns the pixel aspect ratio from the raster attributes.
func (decoder *Decoder) Aspect() (numerator, denominator int) {
	return decoder.aspectNumerator, decoder.aspectDenominator
}

// Cursor returns the drawing position in pixels.
func (decoder *Decoder) Cursor() (x, y int) { return decoder.xpos, decoder.ypos }

// Repeat returns the pending repeat count.
func (decoder *Decoder) Repeat() int { return decoder.repeat }

// ActiveSlot returns the selected colour register.
func (decoder *Decoder) ActiveSlot() int { return decoder.color }

// Palette returns a copy of the colour registers defined or referenced so far.
func (decoder *Decoder) Palette() []Color {
	return append([]Color(nil), decoder.palette...)
}

// Pix returns the pixel buffer. It is owned by the decoder and changes as
// more bytes arrive.
func (decoder *Decoder) Pix() []byte { return decoder.rgb }

// Diagnostics returns the recovery counters.
func (decoder *Decoder) Diagnostics() Diagnostics { return decoder.diag }

// Flush completes a header still waiting for its terminating byte, which
// happens when the body holds nothing but raster attributes.
func (decoder *Decoder) Flush() {
	if decoder.state == stateHeader {
		decoder.allocate()
		decoder.state = stateDefault
	}
}

// Raster hands the pixel buffer over to a new raster and resets the decoder
// for another body.
func (decoder *Decoder) Raster(id uint64, cellHeight int) *graphics.Raster {
	decoder.Flush()
	raster := graphics.NewRaster(id, decoder.width, decoder.height, cellHeight, decoder.rgb)
	decoder.reset()
	return raster
}
