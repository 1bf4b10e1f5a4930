package internal

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

var ErrNotText = errors.New("content is not valid text")

// Decoder turns raw file bytes into text.
type Decoder func([]byte) (string, error)

// LookupDecoder resolves an encoding label. Empty and utf-8 labels give a
// strict decoder that rejects invalid byte sequences.
func LookupDecoder(label string) (Decoder, error) {
	name := strings.ToLower(strings.TrimSpace(label))
	if name == "" || name == "utf-8" || name == "utf8" {
		return decodeUTF8, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", label, err)
	}
	if enc == unicode.UTF8 {
		return decodeUTF8, nil
	}
	return newDecoder(enc), nil
}

func decodeUTF8(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", ErrNotText
	}
	return string(b), nil
}

func newDecoder(enc encoding.Encoding) Decoder {
	return func(b []byte) (string, error) {
		out, err := enc.NewDecoder().Bytes(b)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNotText, err)
		}
		return string(out), nil
	}
}
