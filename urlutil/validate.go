package urlutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jongio/urlkit/host"
	"github.com/jongio/urlkit/urlparse"
)

const (
	// MaxURLLength is the RFC 2616 practical limit for URL length
	MaxURLLength = 2048
)

var (
	ErrEmpty         = errors.New("url cannot be empty")
	ErrTooLong       = errors.New("url exceeds maximum length")
	ErrInvalidFormat = errors.New("invalid URL format")
	ErrScheme        = errors.New("url must use http:// or https://")
	ErrMissingHost   = errors.New("url missing host/domain")
	ErrInsecure      = errors.New("url must use https:// (http:// only allowed for localhost)")
)

// Validate checks that rawURL is a well-formed http or https URL with a host.
//
// Example:
//
//	if err := urlutil.Validate("https://example.com"); err != nil {
//		return fmt.Errorf("invalid URL: %w", err)
//	}
func Validate(rawURL string) error {
	_, err := Parse(rawURL)
	return err
}

// ValidateHTTPSOnly is Validate restricted to https, except for loopback
// hosts which may use http.
func ValidateHTTPSOnly(rawURL string) error {
	u, err := Parse(rawURL)
	if err != nil {
		return err
	}
	if u.Scheme == "https" || IsLocalhost(u) {
		return nil
	}
	return ErrInsecure
}

// Parse validates rawURL and returns its parsed record.
func Parse(rawURL string) (*urlparse.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, ErrEmpty
	}
	if len(rawURL) > MaxURLLength {
		return nil, fmt.Errorf("%w of %d characters", ErrTooLong, MaxURLLength)
	}

	u, err := urlparse.Parse(rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w, got: %s", ErrScheme, u.Scheme)
	}
	if u.Host.IsNull() || u.Host.IsEmpty() {
		return nil, ErrMissingHost
	}
	return u, nil
}

// NormalizeScheme returns rawURL unchanged when it already parses as an http
// or https URL, and otherwise prepends defaultScheme + "://".
//
//	urlutil.NormalizeScheme("example.com", "https")        // "https://example.com"
//	urlutil.NormalizeScheme("http://example.com", "https") // "http://example.com"
func NormalizeScheme(rawURL, defaultScheme string) string {
	rawURL = strings.TrimSpace(rawURL)
	if u, err := urlparse.Parse(rawURL, nil); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return rawURL
	}
	return defaultScheme + "://" + rawURL
}

// IsLocalhost reports whether u's host is "localhost", an address in
// 127.0.0.0/8, or ::1.
func IsLocalhost(u *urlparse.URL) bool {
	switch u.Host.Kind() {
	case host.KindDomain:
		return u.Host.Name() == "localhost"
	case host.KindIPv4:
		return u.Host.IPv4()>>24 == 127
	case host.KindIPv6:
		return u.Host.IPv6() == [8]uint16{7: 1}
	}
	return false
}
