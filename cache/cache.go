// Package cache stores JSON values on disk with a TTL and a version stamp.
// The conformance fetcher uses it to keep downloaded test data between runs.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jongio/urlkit/fileutil"
)

// Options configures a Manager.
type Options struct {
	Dir string
	// TTL bounds the age of an entry. Zero keeps entries forever.
	TTL time.Duration
	// Version invalidates entries written under a different version.
	Version string
}

// Stats counts lookups.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Errors int64 `json:"errors"`
}

type envelope struct {
	Metadata fileutil.CacheMetadata `json:"_cache"`
	Key      string                 `json:"key"`
	Data     json.RawMessage        `json:"data"`
}

// Manager is a file-backed cache safe for concurrent use.
type Manager struct {
	opts Options
	now  func() time.Time
	mu   sync.RWMutex

	hits, misses, errs atomic.Int64
}

// NewManager returns a Manager rooted at opts.Dir.
func NewManager(opts Options) *Manager {
	return &Manager{opts: opts, now: time.Now}
}

// Get decodes the entry for key into target. It reports false for missing,
// expired and stale-version entries. A missing file decodes to an envelope
// with an empty key, which never matches.
func (m *Manager) Get(key string, target any) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var env envelope
	if err := fileutil.ReadJSON(m.path(key), &env); err != nil {
		m.errs.Add(1)
		return false, fmt.Errorf("failed to load cache file: %w", err)
	}
	if env.Key != key || !m.fresh(env.Metadata) {
		m.misses.Add(1)
		return false, nil
	}
	if err := json.Unmarshal(env.Data, target); err != nil {
		m.errs.Add(1)
		return false, fmt.Errorf("failed to unmarshal cached data: %w", err)
	}
	m.hits.Add(1)
	return true, nil
}

func (m *Manager) fresh(meta fileutil.CacheMetadata) bool {
	if m.opts.Version != "" && meta.Version != m.opts.Version {
		return false
	}
	return m.opts.TTL <= 0 || m.now().Sub(meta.CachedAt) <= m.opts.TTL
}

// Set stores value under key.
func (m *Manager) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := fileutil.EnsureDir(m.opts.Dir); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return fileutil.AtomicWriteJSON(m.path(key), envelope{
		Metadata: fileutil.CacheMetadata{CachedAt: m.now(), Version: m.opts.Version},
		Key:      key,
		Data:     raw,
	})
}

// Invalidate removes the entry for key.
func (m *Manager) Invalidate(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.Remove(m.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove cache entry: %w", err)
	}
	return nil
}

// Clear removes every entry in the cache directory.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fileutil.ClearCache(m.opts.Dir, "*"+entrySuffix)
}

// Stats returns lookup counters.
func (m *Manager) Stats() Stats {
	return Stats{Hits: m.hits.Load(), Misses: m.misses.Load(), Errors: m.errs.Load()}
}

const entrySuffix = ".cache.json"

// path maps key to a file name. Keys are usually URLs, so the name is a
// readable prefix plus a digest.
func (m *Manager) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	prefix := strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, key)
	if len(prefix) > 40 {
		prefix = prefix[len(prefix)-40:]
	}
	return filepath.Join(m.opts.Dir, prefix+"-"+hex.EncodeToString(sum[:8])+entrySuffix)
}
