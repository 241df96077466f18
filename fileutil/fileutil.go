package fileutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// DirPermission is the default permission for created directories (rwxr-x---).
	DirPermission = 0750
	// FilePermission is the default permission for written files (rw-r--r--).
	FilePermission = 0644
)

// AtomicWriteJSON writes data as indented JSON through AtomicWriteFile.
func AtomicWriteJSON(path string, data any) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return AtomicWriteFile(path, append(raw, '\n'), FilePermission)
}

// AtomicWriteFile writes data to a temporary file in the target directory and
// renames it over path, so readers never see a partial file.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = tmp.Close() }()

	fail := func(step string, err error) error {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to %s temp file: %w", step, err)
	}
	if _, err := tmp.Write(data); err != nil {
		return fail("write", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := tmp.Close(); err != nil {
		return fail("close", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fail("chmod", err)
	}

	// Renames can fail transiently on Windows while another process holds
	// the target open.
	for attempt := 0; ; attempt++ {
		err = os.Rename(tmpPath, path)
		if err == nil || attempt == 4 {
			break
		}
		time.Sleep(time.Duration(20*(attempt+1)) * time.Millisecond)
	}
	if err != nil {
		return fail("rename", err)
	}
	return nil
}

// ReadJSON decodes the JSON file at path into target. A missing file leaves
// target unchanged and is not an error.
func ReadJSON(path string, target any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

// EnsureDir creates path and its parents.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, DirPermission); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// CacheMetadata stamps cached data with its creation time and version.
type CacheMetadata struct {
	CachedAt time.Time `json:"cachedAt"`
	Version  string    `json:"version,omitempty"`
}

// ClearCache removes the files in dir matching the glob pattern. A missing
// directory is not an error.
func ClearCache(dir, pattern string) error {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
	}
	return nil
}
