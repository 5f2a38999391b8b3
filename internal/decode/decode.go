// Package decode normalizes raw export documents into clean UTF-8 text.
//
// The export tool behind these archives has a long-standing defect: text
// that was genuinely multi-byte UTF-8 is written out one byte per
// codepoint, with codepoints above 0xFF spelled as literal \uXXXX
// escapes. Repair undoes that round trip. The tool also emits raw ASCII
// control bytes inside otherwise valid JSON payloads, which StripControl
// removes before any structural parse is attempted.
package decode

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// ErrMalformedDocument marks a structured document that stayed
// unparseable after cleanup.
var ErrMalformedDocument = errors.New("malformed document")

// MalformedDocumentError carries the cleaned-but-unparseable text so the
// caller can persist it for offline diagnosis. It matches
// ErrMalformedDocument under errors.Is.
type MalformedDocumentError struct {
	Cleaned string
	Err     error
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed document: %v", e.Err)
}

func (e *MalformedDocumentError) Unwrap() error { return e.Err }

func (e *MalformedDocumentError) Is(target error) bool {
	return target == ErrMalformedDocument
}

// Repair reverses the export tool's naive single-byte-per-codepoint
// encoding. Raw bytes are read one codepoint per byte with literal
// \uXXXX escapes (and surrogate pairs) resolved, then codepoints below
// 0x100 are packed back into single bytes and the byte string is
// re-read as UTF-8. When the packed form is not valid UTF-8 the input
// was not mojibake and the unpacked text is returned as-is, which makes
// Repair idempotent on clean text.
func Repair(raw []byte) string {
	runes := decodeNaive(raw)

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range runes {
		if r < 0x100 {
			b.WriteByte(byte(r))
			continue
		}
		// Codepoints above 0xFF can only come from literal escapes in
		// the source; spell them back out so a later JSON parse
		// restores them.
		writeEscape(&b, r)
	}
	packed := b.String()
	if utf8.ValidString(packed) {
		return packed
	}
	return string(runes)
}

// decodeNaive reads one codepoint per byte, resolving \uXXXX escapes and
// combining UTF-16 surrogate pairs.
func decodeNaive(raw []byte) []rune {
	runes := make([]rune, 0, len(raw))
	for i := 0; i < len(raw); {
		r, n := readEscape(raw[i:])
		if n == 0 {
			runes = append(runes, rune(raw[i]))
			i++
			continue
		}
		if utf16.IsSurrogate(r) {
			if r2, n2 := readEscape(raw[i+n:]); n2 > 0 && utf16.IsSurrogate(r2) {
				if c := utf16.DecodeRune(r, r2); c != utf8.RuneError {
					runes = append(runes, c)
					i += n + n2
					continue
				}
			}
		}
		runes = append(runes, r)
		i += n
	}
	return runes
}

// readEscape parses a leading \uXXXX sequence, returning the codepoint
// and consumed length, or (0, 0) when b does not start with one.
func readEscape(b []byte) (rune, int) {
	if len(b) < 6 || b[0] != '\\' || b[1] != 'u' {
		return 0, 0
	}
	v, err := strconv.ParseUint(string(b[2:6]), 16, 32)
	if err != nil {
		return 0, 0
	}
	return rune(v), 6
}

func writeEscape(b *strings.Builder, r rune) {
	if r <= 0xFFFF {
		fmt.Fprintf(b, "\\u%04x", r)
		return
	}
	r1, r2 := utf16.EncodeRune(r)
	fmt.Fprintf(b, "\\u%04x\\u%04x", r1, r2)
}

// StripControl removes every ASCII control character (codepoints 0-31).
// Line breaks go too; the structured payloads this runs on are valid
// without any whitespace.
func StripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 {
			return -1
		}
		return r
	}, s)
}

// Clean applies the full repair-and-strip treatment to one document.
func Clean(raw []byte) string {
	return StripControl(Repair(raw))
}

// CleanJSON cleans a structured document and verifies it parses. On
// failure it returns the cleaned text wrapped in a
// MalformedDocumentError so the caller can surface it for diagnostics;
// the cleaned text is returned either way.
func CleanJSON(raw []byte) (string, error) {
	cleaned := Clean(raw)
	if !json.Valid([]byte(cleaned)) {
		err := json.Unmarshal([]byte(cleaned), &struct{}{})
		if err == nil {
			err = errors.New("invalid json")
		}
		return cleaned, &MalformedDocumentError{Cleaned: cleaned, Err: err}
	}
	return cleaned, nil
}
