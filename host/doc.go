// Package host parses and serializes URL hosts.
//
// A Host is a tagged value: a domain, an IPv4 address, an IPv6 address, an
// opaque host, the empty host, or null (the zero Host). Parse dispatches on the
// input the way a URL parser needs it:
//
//   - "[...]" is parsed as an IPv6 address
//   - hosts of non-special URLs are opaque and only percent-encoded
//   - everything else is percent-decoded, mapped to ASCII through IDNA, and
//     parsed as IPv4 when its last label looks numeric
//
// Failures are returned as errors wrapping one of the Err* sentinels, whose
// text matches the validation error names of the URL Standard. Non-fatal
// validation errors are delivered to Parser.Report.
//
// # Usage
//
//	h, err := host.Parse("EXAMPLE.com", false)
//	// h.Kind() == host.KindDomain, h.String() == "example.com"
//
//	h, err = host.Parse("0x7f.1", false)
//	// h.Kind() == host.KindIPv4, h.String() == "127.0.0.1"
package host
