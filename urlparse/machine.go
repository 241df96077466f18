package urlparse

import (
	"fmt"
	"strings"

	"github.com/jongio/urlkit/host"
	"github.com/jongio/urlkit/logutil"
	"github.com/jongio/urlkit/percent"
)

// eof is the sentinel code point seen once the pointer passes the input.
const eof rune = -1

type step int

const (
	stepContinue step = iota
	stepStop
	stepFailure
)

// Option configures a Machine.
type Option func(*Machine)

// WithStateOverride starts the machine in state and applies the override
// rules the URL setters rely on. It is meant to be combined with WithURL.
func WithStateOverride(state State) Option {
	return func(m *Machine) { m.override = state }
}

// WithURL parses into u instead of a fresh record. u is modified in place.
func WithURL(u *URL) Option {
	return func(m *Machine) { m.url = u }
}

// WithLogger sets the logger receiving validation errors and failures at
// debug level.
func WithLogger(logger *logutil.ComponentLogger) Option {
	return func(m *Machine) { m.logger = logger }
}

// WithHostParser replaces the host parser. Its Report callback, if any, is
// still invoked alongside the machine's own bookkeeping.
func WithHostParser(p *host.Parser) Option {
	return func(m *Machine) { m.hostParser = p }
}

// Machine runs the URL parsing state machine over a single input.
type Machine struct {
	raw      string
	input    []rune
	pointer  int
	state    State
	override State
	buffer   []rune
	base     *URL
	url      *URL

	atSignSeen        bool
	insideBrackets    bool
	passwordTokenSeen bool

	hostParser *host.Parser
	hosts      host.Parser
	logger     *logutil.ComponentLogger

	failure          error
	validationErrors []error
}

// New parses input, resolved against base when base is non-nil, and returns
// the finished machine. Parse failures are reported through Failed and Err,
// not through the returned error.
func New(input string, base *URL, opts ...Option) (*Machine, error) {
	m := &Machine{raw: input, base: base}
	for _, opt := range opts {
		opt(m)
	}
	if input == "" && m.override == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidArgument)
	}

	if m.hostParser != nil {
		m.hosts.Mapper = m.hostParser.Mapper
	}
	m.hosts.Report = m.hostValidationError

	if m.url == nil {
		m.url = &URL{}
		input = m.trimControlAndSpace(input)
	}
	m.input = m.stripTabAndNewline(input)

	m.state = SchemeStart
	if m.override != 0 {
		m.state = m.override
	}
	m.run()
	return m, nil
}

// Parse parses input against base and returns the URL record, or an error
// wrapping ErrFailure.
func Parse(input string, base *URL) (*URL, error) {
	m, err := New(input, base)
	if err != nil {
		return nil, err
	}
	if m.Failed() {
		return nil, m.Err()
	}
	return m.URL(), nil
}

// URL returns the record. After a failure it holds whatever was parsed up to
// that point.
func (m *Machine) URL() *URL { return m.url }

// Failed reports whether parsing failed.
func (m *Machine) Failed() bool { return m.failure != nil }

// Err returns nil on success, otherwise an error wrapping ErrFailure and the
// cause.
func (m *Machine) Err() error {
	if m.failure == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrFailure, m.failure)
}

// HasValidationError reports whether any validation error was recorded.
func (m *Machine) HasValidationError() bool { return len(m.validationErrors) > 0 }

// ValidationErrors returns the recorded validation errors in order.
func (m *Machine) ValidationErrors() []error {
	return append([]error(nil), m.validationErrors...)
}

func (m *Machine) run() {
	for ; m.pointer <= len(m.input); m.pointer++ {
		c := eof
		if m.pointer < len(m.input) {
			c = m.input[m.pointer]
		}
		if s := m.dispatch(c); s != stepContinue {
			return
		}
	}
}

func (m *Machine) dispatch(c rune) step {
	switch m.state {
	case SchemeStart:
		return m.schemeStart(c)
	case Scheme:
		return m.scheme(c)
	case NoScheme:
		return m.noScheme(c)
	case SpecialRelativeOrAuthority:
		return m.specialRelativeOrAuthority(c)
	case PathOrAuthority:
		return m.pathOrAuthority(c)
	case Relative:
		return m.relative(c)
	case RelativeSlash:
		return m.relativeSlash(c)
	case SpecialAuthoritySlashes:
		return m.specialAuthoritySlashes(c)
	case SpecialAuthorityIgnoreSlashes:
		return m.specialAuthorityIgnoreSlashes(c)
	case Authority:
		return m.authority(c)
	case Host, Hostname:
		return m.host(c)
	case Port:
		return m.port(c)
	case File:
		return m.file(c)
	case FileSlash:
		return m.fileSlash(c)
	case FileHost:
		return m.fileHost(c)
	case PathStart:
		return m.pathStart(c)
	case PathState:
		return m.path(c)
	case OpaquePath:
		return m.opaquePath(c)
	case Query:
		return m.query(c)
	case Fragment:
		return m.fragment(c)
	}
	panic(fmt.Sprintf("urlparse: unknown state %v", m.state))
}

func (m *Machine) trimControlAndSpace(input string) string {
	trimmed := strings.TrimFunc(input, func(r rune) bool { return r <= 0x20 })
	if trimmed != input {
		m.validationError(ErrInvalidURLUnit)
	}
	return trimmed
}

func (m *Machine) stripTabAndNewline(input string) []rune {
	runes := make([]rune, 0, len(input))
	stripped := false
	for _, r := range input {
		if r == '\t' || r == '\n' || r == '\r' {
			stripped = true
			continue
		}
		runes = append(runes, r)
	}
	if stripped {
		m.validationError(ErrInvalidURLUnit)
	}
	return runes
}

func (m *Machine) validationError(err error) {
	m.validationErrors = append(m.validationErrors, err)
	if m.logger != nil {
		m.logger.Debug("validation error", "error", err, "state", m.state.String(), "pointer", m.pointer)
	}
}

func (m *Machine) hostValidationError(err error) {
	m.validationError(err)
	if m.hostParser != nil && m.hostParser.Report != nil {
		m.hostParser.Report(err)
	}
}

// fail records err as both a validation error and the failure cause.
func (m *Machine) fail(err error) step {
	m.validationError(err)
	m.failure = err
	if m.logger != nil {
		m.logger.Debug("parse failure", "error", err, "state", m.state.String())
	}
	return stepFailure
}

func (m *Machine) isSpecial() bool { return m.url.IsSpecial() }

func (m *Machine) remaining() []rune {
	if m.pointer+1 >= len(m.input) {
		return nil
	}
	return m.input[m.pointer+1:]
}

func (m *Machine) remainingStartsWith(s string) bool {
	rest := m.remaining()
	i := 0
	for _, r := range s {
		if i >= len(rest) || rest[i] != r {
			return false
		}
		i++
	}
	return true
}

// checkURLUnit records invalid-URL-unit when c is neither a URL code point nor
// a '%' starting a valid percent-encoded byte.
func (m *Machine) checkURLUnit(c rune) {
	if c == '%' {
		rest := m.remaining()
		if len(rest) < 2 || !isHexRune(rest[0]) || !isHexRune(rest[1]) {
			m.validationError(ErrInvalidURLUnit)
		}
		return
	}
	if !percent.IsURLCodePoint(c) {
		m.validationError(ErrInvalidURLUnit)
	}
}

func isHexRune(r rune) bool { return r < 0x80 && percent.IsHexDigit(byte(r)) }

// parseHost parses a host with opaque semantics for non-special schemes.
// Returned errors wrap one of the host package sentinels.
func (m *Machine) parseHost(input string) (host.Host, error) {
	return m.hosts.Parse(input, !m.isSpecial())
}

// shortenPath removes the last segment, keeping a lone normalized drive
// letter of a file URL.
func (m *Machine) shortenPath() {
	p := &m.url.Path
	if m.url.Scheme == "file" && len(p.segments) == 1 && isNormalizedWindowsDriveLetter(p.segments[0]) {
		return
	}
	if len(p.segments) > 0 {
		p.segments = p.segments[:len(p.segments)-1]
	}
}

func (m *Machine) appendQuery(s string) {
	if m.url.Query == nil {
		empty := ""
		m.url.Query = &empty
	}
	*m.url.Query += s
}

func (m *Machine) appendFragment(s string) {
	if m.url.Fragment == nil {
		empty := ""
		m.url.Fragment = &empty
	}
	*m.url.Fragment += s
}

func emptyString() *string {
	s := ""
	return &s
}
