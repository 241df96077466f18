package urlparse

import (
	"errors"

	"github.com/jongio/urlkit/host"
)

var (
	// ErrFailure marks a URL that could not be parsed. Machine.Err and Parse
	// wrap it together with the cause.
	ErrFailure = errors.New("url parse failure")
	// ErrInvalidArgument is returned by New for an empty input without a
	// state override, and by ParseState for unknown names.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Validation errors recorded by the state machine. Host parsing adds the
// sentinels declared in package host.
var (
	ErrInvalidURLUnit                       = host.ErrInvalidURLUnit
	ErrSpecialSchemeMissingFollowingSolidus = errors.New("special-scheme-missing-following-solidus")
	ErrMissingSchemeNonRelativeURL          = errors.New("missing-scheme-non-relative-URL")
	ErrInvalidReverseSolidus                = errors.New("invalid-reverse-solidus")
	ErrInvalidCredentials                   = errors.New("invalid-credentials")
	ErrHostMissing                          = errors.New("host-missing")
	ErrPortOutOfRange                       = errors.New("port-out-of-range")
	ErrPortInvalid                          = errors.New("port-invalid")
	ErrFileInvalidWindowsDriveLetter        = errors.New("file-invalid-Windows-drive-letter")
	ErrFileInvalidWindowsDriveLetterHost    = errors.New("file-invalid-Windows-drive-letter-host")
)

// Failure causes that carry no validation error of their own.
var (
	ErrInvalidScheme   = errors.New("invalid scheme")
	ErrHostnameHasPort = errors.New("hostname must not contain a port")
)
