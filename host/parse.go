package host

import (
	"fmt"
	"strings"

	"github.com/jongio/urlkit/percent"
)

// Parser parses hosts. The zero value is ready to use and maps domains with
// NewIDNAMapper(false).
type Parser struct {
	// Mapper converts Unicode domains to ASCII. Nil selects the default.
	Mapper DomainMapper
	// Report, when set, receives non-fatal validation errors.
	Report func(err error)
}

var defaultParser Parser

// Parse parses input with the default Parser. isOpaque selects opaque-host
// parsing, which applies to URLs with a non-special scheme.
func Parse(input string, isOpaque bool) (Host, error) {
	return defaultParser.Parse(input, isOpaque)
}

// Parse parses input as a host.
func (p *Parser) Parse(input string, isOpaque bool) (Host, error) {
	if strings.HasPrefix(input, "[") {
		if len(input) < 2 || !strings.HasSuffix(input, "]") {
			return Host{}, ErrIPv6Unclosed
		}
		addr, err := ParseIPv6(input[1 : len(input)-1])
		if err != nil {
			return Host{}, err
		}
		return NewIPv6(addr), nil
	}

	if isOpaque {
		if input == "" {
			return Empty(), nil
		}
		return p.parseOpaque(input)
	}

	domain := strings.ToValidUTF8(string(percent.DecodeString(input)), "\uFFFD")
	ascii, err := p.domainToASCII(domain)
	if err != nil {
		return Host{}, err
	}

	if EndsInNumber(ascii) {
		addr, err := parseIPv4(ascii, p.Report)
		if err != nil {
			return Host{}, err
		}
		return NewIPv4(addr), nil
	}
	return NewDomain(ascii), nil
}

func (p *Parser) parseOpaque(input string) (Host, error) {
	for _, r := range input {
		if isForbiddenHostCodePoint(r) {
			return Host{}, fmt.Errorf("%w: %q", ErrHostInvalidCodePoint, r)
		}
	}
	for i, r := range input {
		if r == '%' {
			if i+2 >= len(input) || !percent.IsHexDigit(input[i+1]) || !percent.IsHexDigit(input[i+2]) {
				p.report(ErrInvalidURLUnit)
			}
			continue
		}
		if !percent.IsURLCodePoint(r) {
			p.report(ErrInvalidURLUnit)
		}
	}
	return NewOpaque(percent.EncodeString(input, percent.C0Control)), nil
}

func (p *Parser) mapper() DomainMapper {
	if p.Mapper != nil {
		return p.Mapper
	}
	return defaultMapper
}

func (p *Parser) report(err error) {
	reportTo(p.Report, err)
}
