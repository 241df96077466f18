package security

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePath(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "temp dir", path: dir},
		{name: "not yet created", path: filepath.Join(dir, "report.json")},
		{name: "relative", path: "testdata/urltestdata.json"},
		{name: "dots in a name", path: filepath.Join(dir, "a..b.json")},
		{name: "empty", path: "", wantErr: ErrInvalidPath},
		{name: "parent reference", path: "../etc/passwd", wantErr: ErrPathTraversal},
		{name: "nested parent reference", path: "a/../../b", wantErr: ErrPathTraversal},
		{name: "backslash parent reference", path: `a\..\b`, wantErr: ErrPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidatePathSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on Windows")
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "real.yaml")
	require.NoError(t, os.WriteFile(target, []byte("x: 1"), 0600))
	link := filepath.Join(dir, "link.yaml")
	require.NoError(t, os.Symlink(target, link))

	assert.NoError(t, ValidatePath(link))
}

func TestValidateFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on Windows")
	}
	path := filepath.Join(t.TempDir(), "urlkit.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0600))
	assert.NoError(t, ValidateFilePermissions(path))

	require.NoError(t, os.Chmod(path, 0666))
	assert.ErrorIs(t, ValidateFilePermissions(path), ErrInsecureFilePermissions)

	assert.ErrorContains(t, ValidateFilePermissions(filepath.Join(t.TempDir(), "missing")), "failed to stat file")
}

func TestValidateInput(t *testing.T) {
	assert.NoError(t, ValidateInput("input", "https://example.com/", 64))
	assert.NoError(t, ValidateInput("input", strings.Repeat("a", 1000), 0))
	assert.ErrorIs(t, ValidateInput("input", strings.Repeat("a", 65), 64), ErrInputTooLong)
	assert.ErrorIs(t, ValidateInput("base", "\xff", 64), ErrInvalidInput)

	err := ValidateInput("base", strings.Repeat("a", 10), 5)
	assert.ErrorContains(t, err, "base exceeds 5 bytes")
}
