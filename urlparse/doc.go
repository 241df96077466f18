// Package urlparse implements the URL parsing state machine of the WHATWG URL
// Standard.
//
// New walks an input string code point by code point through the standard's
// states (scheme start, authority, host, path, query, fragment and the file
// and relative states), optionally resolving it against a base URL, and
// produces a normalized URL record. Two error channels are kept apart:
//
//   - validation errors are non-fatal, accumulate in ValidationErrors, and
//     set the sticky HasValidationError flag
//   - a failure aborts the machine; Failed reports it and Err returns an error
//     wrapping ErrFailure and the cause
//
// The only error New itself returns is ErrInvalidArgument, for an empty input
// without a state override.
//
// # Usage
//
//	m, err := urlparse.New("https://www.EXAMPLE.com:443/a/./b/../c?q=1#frag", nil)
//	if err != nil {
//		return err
//	}
//	if m.Failed() {
//		return m.Err()
//	}
//	u := m.URL()
//	// u.Scheme == "https", u.Hostname() == "www.example.com", u.Port == nil,
//	// u.Pathname() == "/a/c", *u.Query == "q=1", *u.Fragment == "frag"
//
// # State overrides
//
// WithStateOverride together with WithURL re-parses a single component of an
// existing record. The URL setters (SetHost, SetPort, SetSearch, ...) are built
// on it:
//
//	_ = u.SetPort("8080")
//	_ = u.SetHash("top")
//
// Under an override, a scheme that does not start with an ASCII letter or
// contains a code point outside the scheme set fails with ErrInvalidScheme
// and records no validation error, as the standard names none for it.
//
// A Machine is single-use and not safe for concurrent use. Distinct machines
// may run concurrently as long as the base record is not mutated meanwhile.
package urlparse
