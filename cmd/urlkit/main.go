// Command urlkit parses URLs with the WHATWG URL Standard parser, runs the
// web-platform-tests conformance data, and serves the parser over HTTP and
// MCP.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
