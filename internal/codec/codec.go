// Package codec converts text file content to and from the base64 form
// used for transport and storage.
package codec

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Encode returns the standard base64 encoding of text.
func Encode(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}

// Decode reverses Encode. Embedded ASCII whitespace is ignored so that
// line-wrapped base64 (as produced by most encoders at 76 columns) decodes
// cleanly.
func Decode(encoded string) (string, error) {
	stripped := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, encoded)

	data, err := base64.StdEncoding.DecodeString(stripped)
	if err != nil {
		return "", fmt.Errorf("decoding base64 content: %w", err)
	}
	return string(data), nil
}
