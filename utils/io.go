package utils

import (
	"io"
)

// ReadByte reads a single byte from reader. Use it on buffered readers.
func ReadByte(reader io.Reader) (byte, error) {
	if br, ok := reader.(io.ByteReader); ok {
		return br.ReadByte()
	}
	var buf [1]byte
	n, err := reader.Read(buf[:])
	if n == 1 {
		return buf[0], nil
	}
	if err == nil {
		err = io.ErrNoProgress
	}
	return 0, err
}
