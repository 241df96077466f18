// Package security validates user-supplied file paths and request inputs.
package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode/utf8"
)

var (
	// ErrInvalidPath indicates a path that cannot be used.
	ErrInvalidPath = errors.New("invalid path")
	// ErrPathTraversal indicates a path containing a parent directory reference.
	ErrPathTraversal = errors.New("path traversal detected")
	// ErrInsecureFilePermissions indicates a group- or world-writable file.
	ErrInsecureFilePermissions = errors.New("insecure file permissions")
	// ErrInputTooLong indicates an input over the configured limit.
	ErrInputTooLong = errors.New("input too long")
	// ErrInvalidInput indicates an input that is not valid UTF-8.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidatePath rejects empty paths and paths with ".." elements, before and
// after resolving symbolic links. Paths that do not exist yet are accepted.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if hasParentRef(path) {
		return fmt.Errorf("%w: path contains parent directory reference", ErrPathTraversal)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path: %w", ErrInvalidPath, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	switch {
	case errors.Is(err, os.ErrNotExist):
		resolved = abs
	case err != nil:
		return fmt.Errorf("%w: cannot resolve symbolic links: %w", ErrInvalidPath, err)
	}
	if hasParentRef(resolved) {
		return fmt.Errorf("%w: resolved path contains parent directory reference", ErrPathTraversal)
	}
	return nil
}

func hasParentRef(path string) bool {
	for _, elem := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if elem == ".." {
			return true
		}
	}
	return false
}

// ValidateFilePermissions returns ErrInsecureFilePermissions when path is
// group- or world-writable. The check is skipped on Windows, which uses ACLs.
func ValidateFilePermissions(path string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Mode().Perm()&0o022 != 0 {
		return fmt.Errorf("%w: %s has mode %v", ErrInsecureFilePermissions, path, info.Mode().Perm())
	}
	return nil
}

// ValidateInput bounds an untrusted string to maxBytes and requires valid
// UTF-8. maxBytes <= 0 disables the length check.
func ValidateInput(name, value string, maxBytes int) error {
	if maxBytes > 0 && len(value) > maxBytes {
		return fmt.Errorf("%w: %s exceeds %d bytes", ErrInputTooLong, name, maxBytes)
	}
	if !utf8.ValidString(value) {
		return fmt.Errorf("%w: %s is not valid UTF-8", ErrInvalidInput, name)
	}
	return nil
}
