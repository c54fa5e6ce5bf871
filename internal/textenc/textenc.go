// Package textenc decodes note files as UTF-8 with a legacy single-byte
// fallback, and re-encodes with whichever encoding succeeded so a file's
// encoding round-trips consistently within one run.
package textenc

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding identifies how a file's bytes were decoded.
type Encoding int

const (
	UTF8 Encoding = iota
	// Latin1 is the ISO 8859-1 fallback applied when bytes are not valid
	// UTF-8. Every byte sequence decodes under it, so a fallback decode
	// cannot fail — but the choice is remembered so backups and rewrites
	// are written back the same way.
	Latin1
)

func (e Encoding) String() string {
	if e == Latin1 {
		return "latin-1"
	}
	return "utf-8"
}

// Decode converts raw file bytes to a string. Valid UTF-8 passes through
// untouched; anything else is decoded as Latin-1.
func Decode(data []byte) (string, Encoding) {
	if utf8.Valid(data) {
		return string(data), UTF8
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// ISO 8859-1 maps every byte; decode errors cannot occur.
		return string(data), Latin1
	}
	return string(decoded), Latin1
}

// Encode converts text back to bytes in the given encoding. Characters
// outside Latin-1 cannot appear in a string decoded from Latin-1, so a
// round-trip within one run never fails; Encode reports an error only if a
// caller encodes text from another source.
func Encode(text string, enc Encoding) ([]byte, error) {
	if enc == UTF8 {
		return []byte(text), nil
	}
	return charmap.ISO8859_1.NewEncoder().Bytes([]byte(text))
}
