package fileutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicWriteJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	in := map[string]int{"passed": 3, "failed": 1}

	require.NoError(t, AtomicWriteJSON(path, in))

	var out map[string]int
	require.NoError(t, ReadJSON(path, &out))
	assert.Equal(t, in, out)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestAtomicWriteFileOverwritesAndSetsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")
	require.NoError(t, AtomicWriteFile(path, []byte("one"), 0600))
	require.NoError(t, AtomicWriteFile(path, []byte("two"), 0600))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}
}

func TestAtomicWriteFileMissingDir(t *testing.T) {
	err := AtomicWriteFile(filepath.Join(t.TempDir(), "missing", "f"), []byte("x"), FilePermission)
	assert.ErrorContains(t, err, "failed to create temp file")
}

func TestAtomicWriteJSONUnmarshalable(t *testing.T) {
	err := AtomicWriteJSON(filepath.Join(t.TempDir(), "f.json"), make(chan int))
	assert.ErrorContains(t, err, "failed to marshal JSON")
}

func TestReadJSON(t *testing.T) {
	dir := t.TempDir()

	target := map[string]string{"keep": "me"}
	require.NoError(t, ReadJSON(filepath.Join(dir, "missing.json"), &target))
	assert.Equal(t, "me", target["keep"])

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0600))
	assert.ErrorContains(t, ReadJSON(bad, &target), "failed to parse JSON")
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestClearCache(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.cache.json", "b.cache.json", "keep.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0600))
	}

	require.NoError(t, ClearCache(dir, "*.cache.json"))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "keep.txt", entries[0].Name())

	assert.NoError(t, ClearCache(filepath.Join(dir, "missing"), "*"))
}

func TestCacheMetadataJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.json")
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, AtomicWriteJSON(path, CacheMetadata{CachedAt: at, Version: "v1"}))

	var got CacheMetadata
	require.NoError(t, ReadJSON(path, &got))
	assert.True(t, at.Equal(got.CachedAt))
	assert.Equal(t, "v1", got.Version)
}
