package dcs

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cam-per/sixel/utils"
)

func TestExtractSevenBit(t *testing.T) {
	data := []byte("hello\x1bP0;1;0q\"1;1;6;6#0;2;100;0;0!6~\x1b\\world")
	seqs, err := Extract(data, false)
	require.NoError(t, err)
	require.Len(t, seqs, 1)

	seq := seqs[0]
	assert.Equal(t, []int{0, 1, 0}, seq.Params)
	assert.Equal(t, 1, seq.Param(1))
	assert.Zero(t, seq.Param(7))
	assert.True(t, seq.Terminated)
	assert.Equal(t, "\"1;1;6;6#0;2;100;0;0!6~", string(seq.Body))
}

func TestExtractEightBit(t *testing.T) {
	data := []byte("\x90q#1~~\x9c")
	seqs, err := Extract(data, false)
	require.NoError(t, err)
	require.Len(t, seqs, 1)
	assert.Equal(t, "#1~~", string(seqs[0].Body))
	assert.True(t, seqs[0].Terminated)
}

func TestExtractUTF8C1(t *testing.T) {
	data := utils.Latin1([]byte("\u0090q~~\u009c"))
	seqs, err := Extract(data, false)
	require.NoError(t, err)
	require.Len(t, seqs, 1)
	assert.Equal(t, "~~", string(seqs[0].Body))
}

func TestExtractSkipsOtherStrings(t *testing.T) {
	data := []byte("\x1bP$qm\x1b\\\x1bPq@\x1b\\\x1bPq?\x1b\\")
	seqs, err := Extract(data, false)
	require.NoError(t, err)
	require.Len(t, seqs, 2)
	assert.Equal(t, "@", string(seqs[0].Body))
	assert.Equal(t, "?", string(seqs[1].Body))
}

func TestExtractCancelled(t *testing.T) {
	seqs, err := Extract([]byte("\x1bPq~~\x18\x1bPq@\x1b\\"), false)
	require.NoError(t, err)
	require.Len(t, seqs, 1)
	assert.Equal(t, "@", string(seqs[0].Body))
}

func TestExtractEscapeCutsBody(t *testing.T) {
	seqs, err := Extract([]byte("\x1bPq~~\x1bPq@\x1b\\"), false)
	require.NoError(t, err)
	require.Len(t, seqs, 2)
	assert.Equal(t, "~~", string(seqs[0].Body))
	assert.False(t, seqs[0].Terminated)
	assert.Equal(t, "@", string(seqs[1].Body))
	assert.True(t, seqs[1].Terminated)
}

func TestExtractUnterminated(t *testing.T) {
	seqs, err := Extract([]byte("\x1bPq\"1;1;2;2~~"), false)
	require.NoError(t, err)
	require.Len(t, seqs, 1)
	assert.False(t, seqs[0].Terminated)
	assert.Equal(t, "\"1;1;2;2~~", string(seqs[0].Body))

	_, err = Extract([]byte("\x1bPq\"1;1;2;2~~"), true)
	assert.ErrorIs(t, err, ErrUnterminated)
}

func TestExtractNone(t *testing.T) {
	_, err := Extract([]byte("plain text \x1b[31m red"), false)
	assert.ErrorIs(t, err, ErrNoSequence)
}

func TestReaderStreams(t *testing.T) {
	reader := NewReader(strings.NewReader("\x1bPq@\x1b\\ \x1bPq~\x1b\\"))

	seq, err := reader.Next()
	require.NoError(t, err)
	assert.Equal(t, "@", string(seq.Body))

	seq, err = reader.Next()
	require.NoError(t, err)
	assert.Equal(t, "~", string(seq.Body))

	_, err = reader.Next()
	assert.ErrorIs(t, err, io.EOF)
}
