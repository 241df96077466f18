package urlparse

import "github.com/jongio/urlkit/host"

func (m *Machine) file(c rune) step {
	m.url.Scheme = "file"
	m.url.Host = host.Empty()

	if c == '/' || c == '\\' {
		if c == '\\' {
			m.validationError(ErrInvalidReverseSolidus)
		}
		m.state = FileSlash
		return stepContinue
	}

	if m.base == nil || m.base.Scheme != "file" {
		m.state = PathState
		m.pointer--
		return stepContinue
	}

	m.url.Host = m.base.Host
	m.url.Path = m.base.Path.clone()
	m.url.Query = cloneString(m.base.Query)
	switch c {
	case '?':
		m.url.Query = emptyString()
		m.state = Query
	case '#':
		m.url.Fragment = emptyString()
		m.state = Fragment
	case eof:
	default:
		m.url.Query = nil
		if startsWithWindowsDriveLetter(m.input[m.pointer:]) {
			m.validationError(ErrFileInvalidWindowsDriveLetter)
			m.url.Path = NewSegmentsPath()
		} else {
			m.shortenPath()
		}
		m.state = PathState
		m.pointer--
	}
	return stepContinue
}

func (m *Machine) fileSlash(c rune) step {
	if c == '/' || c == '\\' {
		if c == '\\' {
			m.validationError(ErrInvalidReverseSolidus)
		}
		m.state = FileHost
		return stepContinue
	}

	if m.base != nil && m.base.Scheme == "file" {
		m.url.Host = m.base.Host
		base := m.base.Path
		if !startsWithWindowsDriveLetter(m.input[m.pointer:]) && !base.IsOpaque() &&
			len(base.segments) > 0 && isNormalizedWindowsDriveLetter(base.segments[0]) {
			m.url.Path.push(base.segments[0])
		}
	}
	m.state = PathState
	m.pointer--
	return stepContinue
}

func (m *Machine) fileHost(c rune) step {
	if c != eof && c != '/' && c != '\\' && c != '?' && c != '#' {
		m.buffer = append(m.buffer, c)
		return stepContinue
	}

	m.pointer--
	if m.override == 0 && isWindowsDriveLetter(m.buffer) {
		// The buffer is kept and becomes the first path segment.
		m.validationError(ErrFileInvalidWindowsDriveLetterHost)
		m.state = PathState
		return stepContinue
	}

	if len(m.buffer) == 0 {
		m.url.Host = host.Empty()
		if m.override != 0 {
			return stepStop
		}
		m.state = PathStart
		return stepContinue
	}

	h, err := m.parseHost(string(m.buffer))
	if err != nil {
		return m.fail(err)
	}
	if h.Kind() == host.KindDomain && h.Name() == "localhost" {
		h = host.Empty()
	}
	m.url.Host = h
	if m.override != 0 {
		return stepStop
	}
	m.buffer = m.buffer[:0]
	m.state = PathStart
	return stepContinue
}
