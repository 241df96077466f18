package urlparse

func (m *Machine) schemeStart(c rune) step {
	switch {
	case isASCIIAlpha(c):
		m.buffer = append(m.buffer, toLowerASCII(c))
		m.state = Scheme
	case m.override == 0:
		m.state = NoScheme
		m.pointer--
	default:
		m.failure = ErrInvalidScheme
		return stepFailure
	}
	return stepContinue
}

func (m *Machine) scheme(c rune) step {
	if isASCIIAlpha(c) || ('0' <= c && c <= '9') || c == '+' || c == '-' || c == '.' {
		m.buffer = append(m.buffer, toLowerASCII(c))
		return stepContinue
	}

	if c != ':' {
		if m.override != 0 {
			m.failure = ErrInvalidScheme
			return stepFailure
		}
		m.buffer = m.buffer[:0]
		m.state = NoScheme
		m.pointer = -1
		return stepContinue
	}

	candidate := string(m.buffer)
	if m.override != 0 {
		if m.url.IsSpecial() != IsSpecialScheme(candidate) {
			return stepStop
		}
		if (m.url.HasCredentials() || m.url.Port != nil) && candidate == "file" {
			return stepStop
		}
		if m.url.Scheme == "file" && m.url.Host.IsEmpty() {
			return stepStop
		}
	}
	m.url.Scheme = candidate
	if m.override != 0 {
		if dp, ok := DefaultPort(m.url.Scheme); ok && m.url.Port != nil && *m.url.Port == dp {
			m.url.Port = nil
		}
		return stepStop
	}
	m.buffer = m.buffer[:0]

	switch {
	case m.url.Scheme == "file":
		if !m.remainingStartsWith("//") {
			m.validationError(ErrSpecialSchemeMissingFollowingSolidus)
		}
		m.state = File
	case m.isSpecial() && m.base != nil && m.base.Scheme == m.url.Scheme:
		m.state = SpecialRelativeOrAuthority
	case m.isSpecial():
		m.state = SpecialAuthoritySlashes
	case m.remainingStartsWith("/"):
		m.state = PathOrAuthority
		m.pointer++
	default:
		m.url.Path = NewOpaquePath("")
		m.state = OpaquePath
	}
	return stepContinue
}

func (m *Machine) noScheme(c rune) step {
	switch {
	case m.base == nil || (m.base.Path.IsOpaque() && c != '#'):
		return m.fail(ErrMissingSchemeNonRelativeURL)
	case m.base.Path.IsOpaque():
		m.url.Scheme = m.base.Scheme
		m.url.Path = m.base.Path.clone()
		m.url.Query = cloneString(m.base.Query)
		m.url.Fragment = emptyString()
		m.state = Fragment
	case m.base.Scheme != "file":
		m.state = Relative
		m.pointer--
	default:
		m.state = File
		m.pointer--
	}
	return stepContinue
}

func toLowerASCII(r rune) rune {
	if 'A' <= r && r <= 'Z' {
		return r + 'a' - 'A'
	}
	return r
}
