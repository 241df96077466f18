// Package urlutil provides HTTP(S) URL validation helpers built on the
// WHATWG parser in package urlparse.
//
// # Usage
//
// Use Validate to accept only http and https URLs with a host:
//
//	if err := urlutil.Validate(customURL); err != nil {
//		return fmt.Errorf("invalid custom URL: %w", err)
//	}
//
// Use ValidateHTTPSOnly where encrypted connections are required. Plain http
// remains allowed for loopback hosts:
//
//	if err := urlutil.ValidateHTTPSOnly(apiEndpoint); err != nil {
//		return fmt.Errorf("API endpoint must use HTTPS: %w", err)
//	}
//
// Use Parse to obtain the normalized record:
//
//	u, err := urlutil.Parse(" HTTPS://Example.COM:443/a/../b ")
//	// u.String() == "https://example.com/b"
//
// # Validation Rules
//
//   - the URL must not be empty or only whitespace
//   - it must not exceed MaxURLLength bytes
//   - it must parse under the WHATWG URL Standard
//   - the scheme must be http or https
//   - the host must be non-empty
//
// Errors wrap the sentinels of this package and, for parse failures,
// urlparse.ErrFailure, so callers can classify them with errors.Is.
package urlutil
