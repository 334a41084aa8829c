package sixel

type headerState uint8

const (
	headerAwait headerState = iota
	headerAspectNumerator
	headerAspectDenominator
	headerHorizontal
	headerVertical
	headerDone
)

// HeaderParser reads the raster attributes: "Pan;Pad;Ph;Pv.
//
// The aspect fields keep only the last digit seen, the extents accumulate.
// Any byte outside that grammar ends the header.
type HeaderParser struct {
	AspectNumerator   int
	AspectDenominator int
	Width             int
	Height            int

	state headerState
}

// NewHeaderParser returns a parser waiting for the '"' introducer.
func NewHeaderParser() HeaderParser {
	return HeaderParser{
		AspectNumerator:   2,
		AspectDenominator: 1,
		state:             headerAwait,
	}
}

// Put feeds one byte and reports whether the header is complete. The byte
// that completes a header is not part of it.
func (parser *HeaderParser) Put(b byte) bool {
	switch {
	case parser.state == headerAwait && b == introHeader:
		parser.state = headerAspectNumerator
	case parser.state == headerAspectNumerator && isDigit(b):
		parser.AspectNumerator = int(b - '0')
	case parser.state == headerAspectNumerator && b == separator:
		parser.state = headerAspectDenominator
	case parser.state == headerAspectDenominator && isDigit(b):
		parser.AspectDenominator = int(b - '0')
	case parser.state == headerAspectDenominator && b == separator:
		parser.state = headerHorizontal
	case parser.state == headerHorizontal && isDigit(b):
		parser.Width = accumulate(parser.Width, b, maxExtent)
	case parser.state == headerHorizontal && b == separator:
		parser.state = headerVertical
	case parser.state == headerVertical && isDigit(b):
		parser.Height = accumulate(parser.Height, b, maxExtent)
	default:
		parser.state = headerDone
	}
	return parser.state == headerDone
}

// Done reports whether the header has ended.
func (parser *HeaderParser) Done() bool { return parser.state == headerDone }
