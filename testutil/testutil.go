// Package testutil holds helpers shared by command and package tests.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jongio/urlkit/cliout"
)

// CaptureOutput runs fn with cliout redirected to a buffer and returns what
// was written together with fn's error. The previous writer is restored
// before returning.
//
//	out, err := testutil.CaptureOutput(t, func() error {
//		return cmd.Execute()
//	})
func CaptureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	restore := cliout.SetOutput(&buf)
	defer restore()

	err := fn()
	return buf.String(), err
}

// WriteFile writes content to name inside dir and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
