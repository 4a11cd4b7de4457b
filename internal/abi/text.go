package abi

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// validate is a package-level singleton; validators cache parsed tags.
var validate = validator.New()

// ValidateText reports whether s is a Domain String: ASCII only, with no NUL
// byte. The returned error is an *EncodingError locating the first bad byte.
func ValidateText(s string) error {
	if validate.Var(s, "ascii") != nil {
		i := strings.IndexFunc(s, func(r rune) bool { return r >= utf8.RuneSelf })
		return &EncodingError{Offset: i, Byte: s[i]}
	}
	if i := strings.IndexByte(s, 0); i >= 0 {
		return &EncodingError{Offset: i}
	}
	return nil
}

// ASCIIJSON escapes every non-ASCII rune of a JSON document as \uXXXX so the
// result is a valid Domain String. Non-ASCII bytes only occur inside JSON
// strings, where the escape is equivalent.
func ASCIIJSON(data []byte) string {
	var b strings.Builder
	b.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		if r < utf8.RuneSelf {
			b.WriteRune(r)
			continue
		}
		if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
			fmt.Fprintf(&b, `\u%04x\u%04x`, r1, r2)
			continue
		}
		fmt.Fprintf(&b, `\u%04x`, r)
	}
	return b.String()
}
