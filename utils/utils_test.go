package utils

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadByte(t *testing.T) {
	r := iotest.OneByteReader(strings.NewReader("ab"))
	b, err := ReadByte(r)
	require.NoError(t, err)
	assert.Equal(t, byte('a'), b)

	b, err = ReadByte(r)
	require.NoError(t, err)
	assert.Equal(t, byte('b'), b)

	_, err = ReadByte(r)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadByteDataWithEOF(t *testing.T) {
	r := iotest.DataErrReader(strings.NewReader("z"))
	b, err := ReadByte(r)
	require.NoError(t, err)
	assert.Equal(t, byte('z'), b)
}

func TestLatin1FoldsC1(t *testing.T) {
	in := []byte("\u0090q#0!3~\u009c")
	assert.Equal(t, []byte("\x90q#0!3~\x9c"), Latin1(in))
}

func TestLatin1KeepsASCII(t *testing.T) {
	in := []byte("\x1bPq\"1;1;2;2~\x1b\\")
	assert.Equal(t, in, Latin1(in))
}

func TestHexDump(t *testing.T) {
	data := []byte("\"1;1;6;6#0;2;100;0;0!6~\x1b")
	var buf bytes.Buffer
	require.NoError(t, HexDump(&buf, bytes.NewReader(data), 0, int64(len(data))))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "00000000  22 31 3b 31 "))
	assert.True(t, strings.HasSuffix(lines[0], `|"1;1;6;6#0;2;100|`))
	assert.True(t, strings.HasPrefix(lines[1], "00000010  "))
	assert.True(t, strings.HasSuffix(lines[1], "|;0;0!6~.|"))
}

func TestHexDumpShortRead(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HexDump(&buf, bytes.NewReader([]byte("ab")), 0, 16))
	assert.Contains(t, buf.String(), "|ab|")
}
