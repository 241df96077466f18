package urlparse

import (
	"strings"

	"github.com/jongio/urlkit/percent"
)

func (m *Machine) pathStart(c rune) step {
	switch {
	case m.isSpecial():
		if c == '\\' {
			m.validationError(ErrInvalidReverseSolidus)
		}
		m.state = PathState
		if c != '/' && c != '\\' {
			m.pointer--
		}
	case m.override == 0 && c == '?':
		m.url.Query = emptyString()
		m.state = Query
	case m.override == 0 && c == '#':
		m.url.Fragment = emptyString()
		m.state = Fragment
	case c != eof:
		m.state = PathState
		if c != '/' {
			m.pointer--
		}
	case m.override != 0 && m.url.Host.IsNull():
		m.url.Path.push("")
	}
	return stepContinue
}

func (m *Machine) path(c rune) step {
	slash := c == '/' || (m.isSpecial() && c == '\\')
	if !slash && c != eof && (m.override != 0 || (c != '?' && c != '#')) {
		m.checkURLUnit(c)
		for _, r := range percent.EncodeRune(c, percent.Path) {
			m.buffer = append(m.buffer, r)
		}
		return stepContinue
	}

	if c == '\\' && slash {
		m.validationError(ErrInvalidReverseSolidus)
	}
	segment := string(m.buffer)
	switch {
	case isDoubleDotSegment(segment):
		m.shortenPath()
		if !slash {
			m.url.Path.push("")
		}
	case isSingleDotSegment(segment):
		if !slash {
			m.url.Path.push("")
		}
	default:
		if m.url.Scheme == "file" && m.url.Path.Len() == 0 && isWindowsDriveLetter(m.buffer) {
			segment = string(m.buffer[0]) + ":"
		}
		m.url.Path.push(segment)
	}
	m.buffer = m.buffer[:0]

	switch c {
	case '?':
		m.url.Query = emptyString()
		m.state = Query
	case '#':
		m.url.Fragment = emptyString()
		m.state = Fragment
	}
	return stepContinue
}

func (m *Machine) opaquePath(c rune) step {
	switch c {
	case '?':
		m.url.Query = emptyString()
		m.state = Query
	case '#':
		m.url.Fragment = emptyString()
		m.state = Fragment
	case eof:
	default:
		m.checkURLUnit(c)
		m.url.Path.appendOpaque(percent.EncodeRune(c, percent.C0Control))
	}
	return stepContinue
}

func (m *Machine) query(c rune) step {
	if c != eof && (m.override != 0 || c != '#') {
		m.checkURLUnit(c)
		m.buffer = append(m.buffer, c)
		return stepContinue
	}

	set := percent.Query
	if m.isSpecial() {
		set = percent.SpecialQuery
	}
	var sb strings.Builder
	for _, r := range m.buffer {
		percent.AppendRune(&sb, r, set)
	}
	m.appendQuery(sb.String())
	m.buffer = m.buffer[:0]

	if c == '#' {
		m.url.Fragment = emptyString()
		m.state = Fragment
	}
	return stepContinue
}

func (m *Machine) fragment(c rune) step {
	if c != eof {
		m.checkURLUnit(c)
		m.appendFragment(percent.EncodeRune(c, percent.Fragment))
	}
	return stepContinue
}
