package urlparse

import (
	"errors"
	"strings"

	"github.com/jongio/urlkit/percent"
)

var (
	// ErrCannotHaveCredentialsOrPort is returned when setting the username,
	// password or port of a URL without a usable host, or of a file URL.
	ErrCannotHaveCredentialsOrPort = errors.New("url cannot have credentials or port")
	// ErrOpaquePath is returned when setting the host or path of a URL with an
	// opaque path.
	ErrOpaquePath = errors.New("url has an opaque path")
)

// The setters below follow the URL API of the WHATWG URL Standard. Each one
// re-parses a single component against a copy of u and only commits the copy
// when parsing succeeds, so u is left unchanged on error. Values the standard
// silently ignores, such as a protocol change from http to a non-special
// scheme, leave u unchanged and return nil.

// SetProtocol changes the scheme. A trailing ':' in value is optional.
func (u *URL) SetProtocol(value string) error {
	return u.reparse(value+":", SchemeStart, nil)
}

// SetUsername replaces the username, percent-encoding it.
func (u *URL) SetUsername(value string) error {
	if u.CannotHaveCredentialsOrPort() {
		return ErrCannotHaveCredentialsOrPort
	}
	u.Username = percent.EncodeString(value, percent.Userinfo)
	return nil
}

// SetPassword replaces the password, percent-encoding it.
func (u *URL) SetPassword(value string) error {
	if u.CannotHaveCredentialsOrPort() {
		return ErrCannotHaveCredentialsOrPort
	}
	u.Password = percent.EncodeString(value, percent.Userinfo)
	return nil
}

// SetHost replaces the host and, when value carries one, the port.
func (u *URL) SetHost(value string) error {
	if u.Path.IsOpaque() {
		return ErrOpaquePath
	}
	return u.reparse(value, Host, nil)
}

// SetHostname replaces the host, rejecting values that carry a port.
func (u *URL) SetHostname(value string) error {
	if u.Path.IsOpaque() {
		return ErrOpaquePath
	}
	return u.reparse(value, Hostname, nil)
}

// SetPort replaces the port. An empty value clears it. Trailing non-digits
// are ignored, so "8080abc" sets 8080.
func (u *URL) SetPort(value string) error {
	if u.CannotHaveCredentialsOrPort() {
		return ErrCannotHaveCredentialsOrPort
	}
	if value == "" {
		u.Port = nil
		return nil
	}
	return u.reparse(value, Port, nil)
}

// SetPathname replaces the path.
func (u *URL) SetPathname(value string) error {
	if u.Path.IsOpaque() {
		return ErrOpaquePath
	}
	return u.reparse(value, PathStart, func(c *URL) { c.Path.reset() })
}

// SetSearch replaces the query. A leading '?' is optional and an empty value
// clears the query.
func (u *URL) SetSearch(value string) error {
	if value == "" {
		u.Query = nil
		return nil
	}
	value = strings.TrimPrefix(value, "?")
	return u.reparse(value, Query, func(c *URL) { c.Query = emptyString() })
}

// SetHash replaces the fragment. A leading '#' is optional and an empty value
// clears the fragment.
func (u *URL) SetHash(value string) error {
	if value == "" {
		u.Fragment = nil
		return nil
	}
	value = strings.TrimPrefix(value, "#")
	return u.reparse(value, Fragment, func(c *URL) { c.Fragment = emptyString() })
}

func (u *URL) reparse(value string, state State, prepare func(*URL)) error {
	c := u.Clone()
	if prepare != nil {
		prepare(c)
	}
	m, err := New(value, nil, WithURL(c), WithStateOverride(state))
	if err != nil {
		return err
	}
	if m.Failed() {
		return m.Err()
	}
	*u = *c
	return nil
}
