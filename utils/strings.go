package utils

import (
	"golang.org/x/text/encoding/charmap"
)

// Latin1 re-encodes UTF-8 text as ISO 8859-1 so that C1 controls sent as
// two byte UTF-8 sequences (U+0090 DCS, U+009C ST) become single bytes.
// Text that is not valid UTF-8 or not representable in Latin-1 is returned
// unchanged.
func Latin1(b []byte) []byte {
	buf, err := charmap.ISO8859_1.NewEncoder().Bytes(b)
	if err != nil {
		return b
	}
	return buf
}
