package dsc

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// TextDecoder resolves string-table bytes to UTF-8 text. Valid UTF-8 passes
// through untouched; anything else is retried against the fallback encodings
// in order. Legacy scripts predate UTF-8 adoption, so the fallback path is a
// recoverable condition rather than a failure.
type TextDecoder struct {
	fallbacks []encoding.Encoding
}

// NewTextDecoder builds a decoder from fallback encoding names. Supported
// names: "shift-jis" (also "sjis"), "euc-jp". An empty list yields a decoder
// that accepts UTF-8 only.
func NewTextDecoder(names ...string) (*TextDecoder, error) {
	td := &TextDecoder{}
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "", "utf-8", "utf8":
			// UTF-8 is always tried first.
		case "shift-jis", "shift_jis", "sjis":
			td.fallbacks = append(td.fallbacks, japanese.ShiftJIS)
		case "euc-jp", "eucjp":
			td.fallbacks = append(td.fallbacks, japanese.EUCJP)
		default:
			return nil, fmt.Errorf("unsupported fallback encoding %q", name)
		}
	}
	return td, nil
}

// Decode converts raw bytes to a UTF-8 string, reporting ok=false when the
// bytes decode under no configured encoding.
func (td *TextDecoder) Decode(raw []byte) (string, bool) {
	if utf8.Valid(raw) {
		return string(raw), true
	}
	for _, enc := range td.fallbacks {
		decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
		if err == nil {
			return string(decoded), true
		}
	}
	return "", false
}
