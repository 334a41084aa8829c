package sixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func putHeader(parser *HeaderParser, s string) bool {
	for i := 0; i < len(s); i++ {
		if parser.Put(s[i]) {
			return true
		}
	}
	return false
}

func TestHeaderParserExtent(t *testing.T) {
	parser := NewHeaderParser()
	require.False(t, putHeader(&parser, `"1;1;10;20`))
	assert.Equal(t, 10, parser.Width)
	assert.Equal(t, 20, parser.Height)

	assert.True(t, parser.Put('#'))
	assert.True(t, parser.Done())
	assert.Equal(t, 10, parser.Width)
	assert.Equal(t, 20, parser.Height)
}

func TestHeaderParserAspectKeepsLastDigit(t *testing.T) {
	parser := NewHeaderParser()
	putHeader(&parser, `"12;34;5;6`)
	assert.Equal(t, 2, parser.AspectNumerator)
	assert.Equal(t, 4, parser.AspectDenominator)
	assert.Equal(t, 5, parser.Width)
	assert.Equal(t, 6, parser.Height)
}

func TestHeaderParserDefaults(t *testing.T) {
	parser := NewHeaderParser()
	assert.Equal(t, 2, parser.AspectNumerator)
	assert.Equal(t, 1, parser.AspectDenominator)
	assert.False(t, parser.Done())
}

func TestHeaderParserEndsOnUnexpectedByte(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no introducer", "#"},
		{"letter in numerator", `"x`},
		{"letter in width", `"1;1;4x`},
		{"second separator after height", `"1;1;4;4;`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewHeaderParser()
			assert.True(t, putHeader(&parser, tt.input))
		})
	}
}

func TestHeaderParserExtentSaturates(t *testing.T) {
	parser := NewHeaderParser()
	putHeader(&parser, `"1;1;99999999999;1`)
	assert.Equal(t, maxExtent, parser.Width)
}
