package host

import "errors"

// Validation errors raised while parsing hosts. The ones returned from Parse
// are fatal; the others are only passed to Parser.Report.
var (
	ErrInvalidURLUnit          = errors.New("invalid-URL-unit")
	ErrDomainToASCII           = errors.New("domain-to-ASCII")
	ErrDomainInvalidCodePoint  = errors.New("domain-invalid-code-point")
	ErrHostInvalidCodePoint    = errors.New("host-invalid-code-point")
	ErrIPv4EmptyPart           = errors.New("IPv4-empty-part")
	ErrIPv4TooManyParts        = errors.New("IPv4-too-many-parts")
	ErrIPv4NonNumericPart      = errors.New("IPv4-non-numeric-part")
	ErrIPv4NonDecimalPart      = errors.New("IPv4-non-decimal-part")
	ErrIPv4OutOfRangePart      = errors.New("IPv4-out-of-range-part")
	ErrIPv6Unclosed            = errors.New("IPv6-unclosed")
	ErrIPv6InvalidCompression  = errors.New("IPv6-invalid-compression")
	ErrIPv6TooManyPieces       = errors.New("IPv6-too-many-pieces")
	ErrIPv6MultipleCompression = errors.New("IPv6-multiple-compression")
	ErrIPv6InvalidCodePoint    = errors.New("IPv6-invalid-code-point")
	ErrIPv6TooFewPieces        = errors.New("IPv6-too-few-pieces")
	ErrIPv4InIPv6TooManyPieces = errors.New("IPv4-in-IPv6-too-many-pieces")
	ErrIPv4InIPv6InvalidPart   = errors.New("IPv4-in-IPv6-invalid-code-point")
	ErrIPv4InIPv6OutOfRange    = errors.New("IPv4-in-IPv6-out-of-range-part")
	ErrIPv4InIPv6TooFewParts   = errors.New("IPv4-in-IPv6-too-few-parts")
)
