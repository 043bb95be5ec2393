package vocab

import (
	"fmt"
	"strings"
	"unicode"
)

// IsSpace reports whether r is whitespace for tokenizing and escaping.
// It extends unicode.IsSpace with the ASCII information separators
// U+001C..U+001F.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// Escape replaces every whitespace rune in token with \uXXXX
// (four lowercase hex digits). Backslashes are not escaped, so a token that
// already contains a literal \uXXXX sequence does not round-trip.
func Escape(token string) string {
	if strings.IndexFunc(token, IsSpace) < 0 {
		return token
	}

	var b strings.Builder
	b.Grow(len(token) + 8)
	for _, r := range token {
		if IsSpace(r) {
			fmt.Fprintf(&b, `\u%04x`, r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Unescape replaces every \u followed by exactly four hex digits with the
// corresponding rune. Other text passes through unchanged.
func Unescape(field string) string {
	if !strings.Contains(field, `\u`) {
		return field
	}

	var b strings.Builder
	b.Grow(len(field))
	for i := 0; i < len(field); {
		if r, ok := escapeAt(field, i); ok {
			b.WriteRune(r)
			i += 6
			continue
		}
		b.WriteByte(field[i])
		i++
	}
	return b.String()
}

// escapeAt decodes a \uXXXX sequence starting at s[i].
func escapeAt(s string, i int) (rune, bool) {
	if i+6 > len(s) || s[i] != '\\' || s[i+1] != 'u' {
		return 0, false
	}
	var r rune
	for _, c := range []byte(s[i+2 : i+6]) {
		d, ok := hexValue(c)
		if !ok {
			return 0, false
		}
		r = r<<4 | d
	}
	return r, true
}

func hexValue(c byte) (rune, bool) {
	switch {
	case c >= '0' && c <= '9':
		return rune(c - '0'), true
	case c >= 'a' && c <= 'f':
		return rune(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return rune(c-'A') + 10, true
	default:
		return 0, false
	}
}
