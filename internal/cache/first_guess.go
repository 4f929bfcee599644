// Package cache persists the best opening guess per vocabulary so later runs can skip the most
// expensive scoring pass.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileName is the cache file name inside the user cache directory.
const FileName = "wordle-solve.cache"

// ErrCorrupt is returned by Load when the cache file cannot be parsed.
var ErrCorrupt = errors.New("first-guess cache corrupt")

// FirstGuessCache maps a vocabulary fingerprint to the index of its best opening guess.
//
// All methods are safe for concurrent use.
type FirstGuessCache struct {
	mu      sync.Mutex
	entries map[string]int
	dirty   bool
}

// New returns an empty cache.
func New() *FirstGuessCache {
	return &FirstGuessCache{entries: make(map[string]int)}
}

// DefaultPath returns the cache file location inside the user cache directory.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the cache stored at path.
//
// The returned cache is never nil: a missing file yields an empty cache and no error, while an
// unreadable or corrupt file yields an empty cache together with the error so callers can
// report it and carry on.
func Load(path string) (*FirstGuessCache, error) {
	c := New()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("cache: read %s: %w", path, err)
	}
	if len(data) == 0 {
		return c, nil
	}

	var entries map[string]int
	if err := json.Unmarshal(data, &entries); err != nil {
		return c, fmt.Errorf("cache: parse %s: %w: %w", path, ErrCorrupt, err)
	}
	for k, v := range entries {
		if v >= 0 {
			c.entries[k] = v
		}
	}
	return c, nil
}

// Lookup returns the cached opening index for a vocabulary fingerprint.
func (c *FirstGuessCache) Lookup(fingerprint string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.entries[fingerprint]
	return i, ok
}

// Store records the opening index for a vocabulary fingerprint.
func (c *FirstGuessCache) Store(fingerprint string, index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if old, ok := c.entries[fingerprint]; ok && old == index {
		return
	}
	c.entries[fingerprint] = index
	c.dirty = true
}

// Dirty reports whether Store changed the cache since it was loaded or last saved.
func (c *FirstGuessCache) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// Save writes the cache to path, replacing the previous file atomically.
func (c *FirstGuessCache) Save(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(c.entries)
	if err != nil {
		return fmt.Errorf("cache: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cache: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), FileName+".*")
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("cache: write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cache: close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	c.dirty = false
	return nil
}
