package scenario

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Charset names the encoding a script was read with.
type Charset string

const (
	CharsetUTF8     Charset = "utf-8"
	CharsetUTF16    Charset = "utf-16"
	CharsetShiftJIS Charset = "shift_jis"
)

// DecodeScript turns raw script bytes into text. UTF-8 (with or without a
// BOM) and BOM-marked UTF-16 are taken as is; anything else is read as
// Shift_JIS/CP932, with undecodable bytes replaced.
func DecodeScript(b []byte) (string, Charset, error) {
	switch {
	case bytes.HasPrefix(b, bomUTF8):
		return string(b[len(bomUTF8):]), CharsetUTF8, nil
	case bytes.HasPrefix(b, bomUTF16LE), bytes.HasPrefix(b, bomUTF16BE):
		s, err := decodeWith(unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), b)
		return s, CharsetUTF16, err
	case utf8.Valid(b):
		return string(b), CharsetUTF8, nil
	}

	s, err := decodeWith(japanese.ShiftJIS, b)
	return s, CharsetShiftJIS, err
}

// ReadScript reads everything from r and decodes it with DecodeScript.
func ReadScript(r io.Reader) (string, Charset, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", "", fmt.Errorf("unable to read script: %w", err)
	}
	return DecodeScript(b)
}

func decodeWith(enc encoding.Encoding, b []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("unable to decode script: %w", err)
	}
	return string(out), nil
}
