package urlparse

import "github.com/jongio/urlkit/percent"

func (m *Machine) specialRelativeOrAuthority(c rune) step {
	if c == '/' && m.remainingStartsWith("/") {
		m.state = SpecialAuthorityIgnoreSlashes
		m.pointer++
		return stepContinue
	}
	m.validationError(ErrSpecialSchemeMissingFollowingSolidus)
	m.state = Relative
	m.pointer--
	return stepContinue
}

func (m *Machine) pathOrAuthority(c rune) step {
	if c == '/' {
		m.state = Authority
		return stepContinue
	}
	m.state = PathState
	m.pointer--
	return stepContinue
}

func (m *Machine) relative(c rune) step {
	m.url.Scheme = m.base.Scheme
	switch {
	case c == '/':
		m.state = RelativeSlash
	case m.isSpecial() && c == '\\':
		m.validationError(ErrInvalidReverseSolidus)
		m.state = RelativeSlash
	default:
		m.copyAuthorityFromBase()
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
			m.shortenPath()
			m.state = PathState
			m.pointer--
		}
	}
	return stepContinue
}

func (m *Machine) relativeSlash(c rune) step {
	switch {
	case m.isSpecial() && (c == '/' || c == '\\'):
		if c == '\\' {
			m.validationError(ErrInvalidReverseSolidus)
		}
		m.state = SpecialAuthorityIgnoreSlashes
	case c == '/':
		m.state = Authority
	default:
		m.copyAuthorityFromBase()
		m.state = PathState
		m.pointer--
	}
	return stepContinue
}

func (m *Machine) copyAuthorityFromBase() {
	m.url.Username = m.base.Username
	m.url.Password = m.base.Password
	m.url.Host = m.base.Host
	m.url.Port = nil
	if m.base.Port != nil {
		p := *m.base.Port
		m.url.Port = &p
	}
}

func (m *Machine) specialAuthoritySlashes(c rune) step {
	m.state = SpecialAuthorityIgnoreSlashes
	if c == '/' && m.remainingStartsWith("/") {
		m.pointer++
		return stepContinue
	}
	m.validationError(ErrSpecialSchemeMissingFollowingSolidus)
	m.pointer--
	return stepContinue
}

func (m *Machine) specialAuthorityIgnoreSlashes(c rune) step {
	if c != '/' && c != '\\' {
		m.state = Authority
		m.pointer--
		return stepContinue
	}
	m.validationError(ErrSpecialSchemeMissingFollowingSolidus)
	return stepContinue
}

// endsAuthority reports whether c terminates the authority, host or port.
func (m *Machine) endsAuthority(c rune) bool {
	return c == eof || c == '/' || c == '?' || c == '#' || (m.isSpecial() && c == '\\')
}

func (m *Machine) authority(c rune) step {
	switch {
	case c == '@':
		m.validationError(ErrInvalidCredentials)
		if m.atSignSeen {
			m.buffer = append([]rune("%40"), m.buffer...)
		}
		m.atSignSeen = true
		for _, r := range m.buffer {
			if r == ':' && !m.passwordTokenSeen {
				m.passwordTokenSeen = true
				continue
			}
			encoded := percent.EncodeRune(r, percent.Userinfo)
			if m.passwordTokenSeen {
				m.url.Password += encoded
			} else {
				m.url.Username += encoded
			}
		}
		m.buffer = m.buffer[:0]
	case m.endsAuthority(c):
		if m.atSignSeen && len(m.buffer) == 0 {
			return m.fail(ErrHostMissing)
		}
		m.pointer -= len(m.buffer) + 1
		m.buffer = m.buffer[:0]
		m.state = Host
	default:
		m.buffer = append(m.buffer, c)
	}
	return stepContinue
}

func (m *Machine) host(c rune) step {
	if m.override != 0 && m.url.Scheme == "file" {
		m.pointer--
		m.state = FileHost
		return stepContinue
	}

	switch {
	case c == ':' && !m.insideBrackets:
		if len(m.buffer) == 0 {
			return m.fail(ErrHostMissing)
		}
		if m.override == Hostname {
			m.failure = ErrHostnameHasPort
			return stepFailure
		}
		h, err := m.parseHost(string(m.buffer))
		if err != nil {
			return m.fail(err)
		}
		m.url.Host = h
		m.buffer = m.buffer[:0]
		m.state = Port
	case m.endsAuthority(c):
		m.pointer--
		if m.isSpecial() && len(m.buffer) == 0 {
			return m.fail(ErrHostMissing)
		}
		if m.override != 0 && len(m.buffer) == 0 && (m.url.HasCredentials() || m.url.Port != nil) {
			return stepStop
		}
		h, err := m.parseHost(string(m.buffer))
		if err != nil {
			return m.fail(err)
		}
		m.url.Host = h
		m.buffer = m.buffer[:0]
		m.state = PathStart
		if m.override != 0 {
			return stepStop
		}
	default:
		switch c {
		case '[':
			m.insideBrackets = true
		case ']':
			m.insideBrackets = false
		}
		m.buffer = append(m.buffer, c)
	}
	return stepContinue
}

const maxPort = 1<<16 - 1

func (m *Machine) port(c rune) step {
	switch {
	case '0' <= c && c <= '9':
		m.buffer = append(m.buffer, c)
	case m.endsAuthority(c) || m.override != 0:
		if len(m.buffer) != 0 {
			port := 0
			for _, d := range m.buffer {
				port = port*10 + int(d-'0')
				if port > maxPort {
					return m.fail(ErrPortOutOfRange)
				}
			}
			if dp, ok := DefaultPort(m.url.Scheme); ok && int(dp) == port {
				m.url.Port = nil
			} else {
				p := uint16(port)
				m.url.Port = &p
			}
			m.buffer = m.buffer[:0]
			if m.override != 0 {
				return stepStop
			}
		}
		if m.override != 0 {
			m.failure = ErrPortInvalid
			return stepFailure
		}
		m.state = PathStart
		m.pointer--
	default:
		return m.fail(ErrPortInvalid)
	}
	return stepContinue
}
