// Package htmlescape encodes label text before it is embedded in markup. It
// works on plain strings and is independent of the DOM layer.
package htmlescape

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// maxEntityLength bounds how far String looks for the ';' closing an entity
// reference that is already present in the input.
const maxEntityLength = 40

// String escapes &, <, >, " and ' using named references. Entity references
// already present in s are kept as they are (no double encoding), and invalid
// UTF-8 sequences are replaced with U+FFFD.
func String(s string) string {
	if s == "" {
		return ""
	}
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, string(utf8.RuneError))
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '&':
			if n := entityLength(s[i:]); n > 0 {
				b.WriteString(s[i : i+n])
				i += n - 1
				continue
			}
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// entityLength returns the byte length of a valid character reference at the
// start of s, or 0 when s does not start with one.
func entityLength(s string) int {
	limit := len(s)
	if limit > maxEntityLength {
		limit = maxEntityLength
	}
	end := strings.IndexByte(s[:limit], ';')
	if end < 2 {
		return 0
	}
	candidate := s[:end+1]
	body := candidate[1:end]
	if !wellFormedReference(body) {
		return 0
	}
	decoded := html.UnescapeString(candidate)
	if decoded == candidate {
		return 0
	}
	// A legacy prefix match ("&notit;" decoding as "¬it;") leaves the
	// trailing ';' in place; only whole references count.
	if strings.HasSuffix(decoded, ";") && candidate != "&semi;" {
		return 0
	}
	return len(candidate)
}

func wellFormedReference(body string) bool {
	if body[0] == '#' {
		digits := body[1:]
		hex := false
		if digits != "" && (digits[0] == 'x' || digits[0] == 'X') {
			digits = digits[1:]
			hex = true
		}
		if digits == "" {
			return false
		}
		for _, r := range digits {
			if !isDigit(r, hex) {
				return false
			}
		}
		return true
	}
	for idx, r := range body {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case idx > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func isDigit(r rune, hex bool) bool {
	if r >= '0' && r <= '9' {
		return true
	}
	if !hex {
		return false
	}
	return (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
