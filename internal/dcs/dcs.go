// Package dcs finds sixel device control strings in a terminal byte stream
// and returns their bodies.
//
// Both the 7-bit form (ESC P ... q body ESC \) and the 8-bit form (0x90 ...
// q body 0x9C) are recognised. Other device control strings are skipped.
package dcs

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/cam-per/sixel/utils"
)

var (
	ErrNoSequence   = errors.New("dcs: no sixel sequence")
	ErrUnterminated = errors.New("dcs: unterminated sequence")
)

const (
	esc   = 0x1b
	can   = 0x18
	sub   = 0x1a
	c1DCS = 0x90
	c1ST  = 0x9c

	sixelFinal = 'q'
	maxParam   = 1 << 16
)

// Sequence is one sixel device control string.
type Sequence struct {
	// Params are P1;P2;P3 before the final 'q'. P2 selects background
	// handling and is not interpreted here.
	Params []int
	Body   []byte
	// Terminated is false when the input ended or another escape sequence
	// started before the string terminator.
	Terminated bool
}

// Param returns parameter i, or 0 when it was omitted.
func (seq *Sequence) Param(i int) int {
	if i < 0 || i >= len(seq.Params) {
		return 0
	}
	return seq.Params[i]
}

// Reader scans a stream for sixel sequences.
type Reader struct {
	r *bufio.Reader

	// Strict makes Next report ErrUnterminated for a sequence cut off by
	// the end of input instead of returning it.
	Strict bool

	afterEsc bool
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next returns the next sixel sequence, or io.EOF when there are no more.
func (reader *Reader) Next() (*Sequence, error) {
	for {
		b, err := reader.readByte()
		if err != nil {
			return nil, err
		}

		switch {
		case reader.afterEsc:
			reader.afterEsc = false
			if b != 'P' {
				if b == esc {
					reader.afterEsc = true
				}
				continue
			}
		case b == esc:
			reader.afterEsc = true
			continue
		case b != c1DCS:
			continue
		}

		seq, err := reader.sequence()
		if err != nil {
			return nil, err
		}
		if seq != nil {
			return seq, nil
		}
	}
}

// sequence reads a device control string after its introducer. It returns
// nil without error for strings that are not sixel or were cancelled.
func (reader *Reader) sequence() (*Sequence, error) {
	params, isSixel, err := reader.params()
	if err != nil {
		return nil, err
	}

	seq := &Sequence{Params: params}
	var body bytes.Buffer
	for {
		b, err := reader.readByte()
		if err == io.EOF {
			if !isSixel {
				return nil, io.EOF
			}
			if reader.Strict {
				return nil, ErrUnterminated
			}
			seq.Body = body.Bytes()
			return seq, nil
		}
		if err != nil {
			return nil, err
		}

		switch b {
		case c1ST:
			seq.Terminated = true
		case esc:
			next, err := reader.readByte()
			switch {
			case err == io.EOF && reader.Strict && isSixel:
				return nil, ErrUnterminated
			case err == io.EOF:
			case err != nil:
				return nil, err
			case next == '\\':
				seq.Terminated = true
			default:
				// an escape sequence cuts the string short
				reader.afterEsc = true
				if err := reader.r.UnreadByte(); err != nil {
					return nil, err
				}
			}
		case can, sub:
			return nil, nil
		default:
			if isSixel {
				body.WriteByte(b)
			}
			continue
		}

		if !isSixel {
			return nil, nil
		}
		seq.Body = body.Bytes()
		return seq, nil
	}
}

// params reads the numeric parameters up to the final byte and reports
// whether the string is sixel: final 'q' with no intermediates or private
// markers.
func (reader *Reader) params() ([]int, bool, error) {
	params := []int{0}
	plain := true
	for {
		b, err := reader.readByte()
		if err != nil {
			return nil, false, err
		}
		switch {
		case b >= '0' && b <= '9':
			i := len(params) - 1
			params[i] = params[i]*10 + int(b-'0')
			if params[i] > maxParam {
				params[i] = maxParam
			}
		case b == ';':
			params = append(params, 0)
		case b == ':':
		case b >= 0x20 && b <= 0x2f, b >= 0x3c && b <= 0x3f:
			plain = false
		default:
			return params, plain && b == sixelFinal, nil
		}
	}
}

func (reader *Reader) readByte() (byte, error) {
	return utils.ReadByte(reader.r)
}

// Extract returns every sixel sequence in data.
func Extract(data []byte, strict bool) ([]*Sequence, error) {
	reader := NewReader(bytes.NewReader(data))
	reader.Strict = strict

	var out []*Sequence
	for {
		seq, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return out, err
		}
		out = append(out, seq)
	}
	if len(out) == 0 {
		return nil, ErrNoSequence
	}
	return out, nil
}
