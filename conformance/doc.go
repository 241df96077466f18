// Package conformance runs the web-platform-tests URL test data
// (urltestdata.json) against package urlparse.
//
// The data is a JSON array whose string entries are comments and whose object
// entries are cases:
//
//	{"input": "../c", "base": "https://example.org/a/b", "href": "https://example.org/c", ...}
//
// A case passes when a failure was expected and either the base or the input
// fails to parse, or when parsing succeeds and every component getter matches
// the expectation. Cases with an empty input are skipped, since New rejects
// an empty input without a state override.
//
// Fetcher downloads the data over HTTP with retries and keeps it in a
// cache.Manager between runs.
package conformance
