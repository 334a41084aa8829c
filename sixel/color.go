package sixel

// Color is a palette entry.
type Color struct {
	R, G, B uint8
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xffff
}

// ColorSpace is the coordinate system named in a colour definition. Only
// the RGB form is converted; an HLS definition is read as if it were RGB.
type ColorSpace uint8

const (
	ColorSpaceUnset ColorSpace = 0
	ColorSpaceHLS   ColorSpace = 1
	ColorSpaceRGB   ColorSpace = 2
)

// ColorOutcome tells the decoder what a finished colour command does.
type ColorOutcome uint8

const (
	// ColorPending means the command needs more bytes.
	ColorPending ColorOutcome = iota
	// ColorNew defines Slot as Color.
	ColorNew
	// ColorSelect makes Slot the active register.
	ColorSelect
	// ColorInvalid means the command was malformed and is dropped.
	ColorInvalid
)

func (outcome ColorOutcome) String() string {
	switch outcome {
	case ColorPending:
		return "pending"
	case ColorNew:
		return "new"
	case ColorSelect:
		return "select"
	case ColorInvalid:
		return "invalid"
	}
	return "unknown"
}

// ColorResult is returned by every ColorParser step.
type ColorResult struct {
	Outcome ColorOutcome
	Slot    int
	Color   Color
	Space   ColorSpace
}

type colorState uint8

const (
	colorSlot colorState = iota
	colorSpace
	colorRed
	colorGreen
	colorBlue
	colorFinished
)

// ColorParser reads a colour command after its '#' introducer:
// Pc or Pc;Pu;Px;Py;Pz with components on a 0-100 scale.
type ColorParser struct {
	slot  int
	space ColorSpace
	level [3]int
	state colorState
}

// Put feeds one byte. A terminal result is returned for the byte that ends
// the command; that byte belongs to whatever follows.
func (parser *ColorParser) Put(b byte) ColorResult {
	switch {
	case parser.state == colorSlot && isDigit(b):
		parser.slot = accumulate(parser.slot, b, maxExtent)
	case parser.state == colorSlot && b == separator:
		parser.state = colorSpace
	case parser.state == colorSlot:
		return parser.finish(ColorSelect)
	case parser.state == colorSpace && isDigit(b):
		parser.space = ColorSpace(b - '0')
	case parser.state == colorSpace && b == separator:
		parser.state = colorRed
	case parser.state >= colorRed && parser.state <= colorBlue && isDigit(b):
		i := int(parser.state - colorRed)
		parser.level[i] = accumulate(parser.level[i], b, maxExtent)
	case (parser.state == colorRed || parser.state == colorGreen) && b == separator:
		parser.state++
	case parser.state == colorBlue:
		return parser.finish(ColorNew)
	default:
		return parser.finish(ColorInvalid)
	}
	return ColorResult{Outcome: ColorPending}
}

func (parser *ColorParser) finish(outcome ColorOutcome) ColorResult {
	parser.state = colorFinished
	result := ColorResult{
		Outcome: outcome,
		Slot:    parser.slot,
		Space:   parser.space,
	}
	if outcome == ColorNew {
		result.Color = Color{
			R: scaleLevel(parser.level[0]),
			G: scaleLevel(parser.level[1]),
			B: scaleLevel(parser.level[2]),
		}
	}
	return result
}

// scaleLevel converts a 0-100 level to 0-255, truncating.
func scaleLevel(level int) uint8 {
	if level > maxLevel {
		level = maxLevel
	}
	return uint8(level * 255 / maxLevel)
}
