package decode

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// Charset converts raw bytes in a declared source charset to UTF-8.
// Empty and UTF-8 declarations pass the bytes through untouched, which
// is the common case for these exports; anything else is resolved
// through the WHATWG encoding index.
func Charset(raw []byte, declared string) ([]byte, error) {
	name := strings.ToLower(strings.TrimSpace(declared))
	if name == "" || name == "utf-8" || name == "utf8" {
		return raw, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("charset %q: %w", declared, err)
	}
	if enc == unicode.UTF8 {
		return raw, nil
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("charset %q: %w", declared, err)
	}
	return out, nil
}
