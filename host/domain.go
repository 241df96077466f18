package host

import (
	"fmt"
	"strings"

	"golang.org/x/net/idna"
)

// DomainMapper converts a Unicode domain to its ASCII form. It is the seam
// for the IDNA (UTS #46) processing a host parser depends on.
type DomainMapper interface {
	ToASCII(domain string) (string, error)
}

// IDNAMapper is the default DomainMapper, backed by golang.org/x/net/idna.
type IDNAMapper struct {
	profile *idna.Profile
}

// NewIDNAMapper returns a mapper configured the way URL host parsing needs:
// nontransitional processing with bidi and joiner checks, no hyphen checks.
// beStrict enables STD3 ASCII rules and DNS length verification.
func NewIDNAMapper(beStrict bool) *IDNAMapper {
	return &IDNAMapper{
		profile: idna.New(
			idna.MapForLookup(),
			idna.BidiRule(),
			idna.Transitional(false),
			idna.StrictDomainName(beStrict),
			idna.CheckHyphens(false),
			idna.CheckJoiners(true),
			idna.VerifyDNSLength(beStrict),
		),
	}
}

// ToASCII implements DomainMapper.
func (m *IDNAMapper) ToASCII(domain string) (string, error) {
	return m.profile.ToASCII(domain)
}

var defaultMapper DomainMapper = NewIDNAMapper(false)

// domainToASCII maps domain to ASCII and rejects forbidden domain code points.
func (p *Parser) domainToASCII(domain string) (string, error) {
	var ascii string
	if isASCII(domain) && !hasPunycodeLabel(domain) {
		ascii = asciiLower(domain)
	} else {
		mapped, err := p.mapper().ToASCII(domain)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrDomainToASCII, err)
		}
		ascii = mapped
	}
	if ascii == "" {
		return "", fmt.Errorf("%w: empty result", ErrDomainToASCII)
	}
	for _, r := range ascii {
		if isForbiddenDomainCodePoint(r) {
			return "", fmt.Errorf("%w: %q", ErrDomainInvalidCodePoint, r)
		}
	}
	return ascii, nil
}

func hasPunycodeLabel(domain string) bool {
	for _, label := range strings.Split(domain, ".") {
		if len(label) >= 4 && strings.EqualFold(label[:4], "xn--") {
			return true
		}
	}
	return false
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

func asciiLower(s string) string {
	for i := 0; i < len(s); i++ {
		if 'A' <= s[i] && s[i] <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if 'A' <= b[j] && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}

// isForbiddenHostCodePoint covers the code points no host may contain.
func isForbiddenHostCodePoint(r rune) bool {
	switch r {
	case 0x00, '\t', '\n', '\r', ' ', '#', '/', ':', '<', '>', '?', '@', '[', '\\', ']', '^', '|':
		return true
	}
	return false
}

// isForbiddenDomainCodePoint adds C0 controls, '%' and DEL to the host set.
func isForbiddenDomainCodePoint(r rune) bool {
	return isForbiddenHostCodePoint(r) || r <= 0x1F || r == '%' || r == 0x7F
}
