package percent

import (
	"strings"
	"unicode/utf8"
)

const upperhex = "0123456789ABCDEF"

// IsHexDigit reports whether b is an ASCII hex digit.
func IsHexDigit(b byte) bool {
	switch {
	case '0' <= b && b <= '9':
		return true
	case 'a' <= b && b <= 'f':
		return true
	case 'A' <= b && b <= 'F':
		return true
	}
	return false
}

func unhex(b byte) byte {
	switch {
	case '0' <= b && b <= '9':
		return b - '0'
	case 'a' <= b && b <= 'f':
		return b - 'a' + 10
	case 'A' <= b && b <= 'F':
		return b - 'A' + 10
	}
	return 0
}

// AppendRune appends the UTF-8 percent-encoding of r to sb. Bytes in set are
// written as uppercase %XX escapes, all others literally.
func AppendRune(sb *strings.Builder, r rune, set EncodeSet) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	for _, b := range buf[:n] {
		if set(b) {
			sb.WriteByte('%')
			sb.WriteByte(upperhex[b>>4])
			sb.WriteByte(upperhex[b&0x0F])
			continue
		}
		sb.WriteByte(b)
	}
}

// EncodeRune returns the UTF-8 percent-encoding of a single code point.
func EncodeRune(r rune, set EncodeSet) string {
	// Fast path: the overwhelming majority of URL code points are plain ASCII.
	if r < utf8.RuneSelf && !set(byte(r)) {
		return string(r)
	}
	var sb strings.Builder
	AppendRune(&sb, r, set)
	return sb.String()
}

// EncodeString percent-encodes every code point of s.
func EncodeString(s string, set EncodeSet) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		AppendRune(&sb, r, set)
	}
	return sb.String()
}

// Decode percent-decodes a byte sequence. A '%' followed by two hex digits
// becomes the byte they spell; every other byte, including a lone '%', is
// copied through.
func Decode(input []byte) []byte {
	out := make([]byte, 0, len(input))
	for i := 0; i < len(input); i++ {
		b := input[i]
		if b == '%' && i+2 < len(input) && IsHexDigit(input[i+1]) && IsHexDigit(input[i+2]) {
			out = append(out, unhex(input[i+1])<<4|unhex(input[i+2]))
			i += 2
			continue
		}
		out = append(out, b)
	}
	return out
}

// DecodeString percent-decodes the UTF-8 encoding of s.
func DecodeString(s string) []byte {
	return Decode([]byte(s))
}

// IsURLCodePoint reports whether r may appear unescaped in a URL: ASCII
// alphanumerics, the punctuation !$&'()*+,-./:;=?@_~, and non-ASCII code
// points other than surrogates and noncharacters.
func IsURLCodePoint(r rune) bool {
	switch {
	case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
		return true
	case r < 0x80:
		return strings.ContainsRune("!$&'()*+,-./:;=?@_~", r)
	case r < 0xA0 || r > 0x10FFFD:
		return false
	case 0xD800 <= r && r <= 0xDFFF:
		return false
	case 0xFDD0 <= r && r <= 0xFDEF, r&0xFFFE == 0xFFFE:
		return false
	}
	return true
}
