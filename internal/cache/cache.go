package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
)

// hotSize bounds the in-memory layer; disk holds everything else.
const hotSize = 256

// Cache stores raw model responses keyed by a fingerprint of the
// (model, prompt) pair. A fingerprint hit is trusted verbatim; there is
// no verification step, so collisions are an accepted risk.
//
// Writers do not lock: two concurrent stores for the same fingerprint
// race and the last writer wins.
type Cache struct {
	dir     string
	enabled bool
	hot     *lru.Cache[string, string]
	log     *logrus.Logger
}

// New creates a cache rooted at dir. When enabled is false no directory
// is created and all operations are no-ops. Entries older than maxAge
// are evicted once at construction (maxAge <= 0 skips eviction).
func New(dir string, enabled bool, maxAge time.Duration, log *logrus.Logger) (*Cache, error) {
	c := &Cache{dir: dir, enabled: enabled, log: log}
	if !enabled {
		return c, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory %s: %w", dir, err)
	}
	hot, err := lru.New[string, string](hotSize)
	if err != nil {
		return nil, fmt.Errorf("creating memory cache: %w", err)
	}
	c.hot = hot

	if maxAge > 0 {
		c.EvictOlderThan(maxAge)
	}
	return c, nil
}

// Fingerprint returns the deterministic cache key for a (model, prompt)
// pair: the SHA-256 hex digest of "model:prompt".
func Fingerprint(model, prompt string) string {
	sum := sha256.Sum256([]byte(model + ":" + prompt))
	return hex.EncodeToString(sum[:])
}

// Lookup returns the cached response for the pair, if present.
func (c *Cache) Lookup(model, prompt string) (string, bool) {
	if !c.enabled {
		return "", false
	}
	key := Fingerprint(model, prompt)

	if text, ok := c.hot.Get(key); ok {
		return text, true
	}

	data, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return "", false
	}
	text := string(data)
	c.hot.Add(key, text)
	c.log.Debugf("cache hit for %s", key[:10])
	return text, true
}

// Store records a response for the pair. Write failures are logged and
// swallowed; the cache is not safety-critical.
func (c *Cache) Store(model, prompt, text string) {
	if !c.enabled {
		return
	}
	key := Fingerprint(model, prompt)
	if err := os.WriteFile(filepath.Join(c.dir, key), []byte(text), 0644); err != nil {
		c.log.Warnf("cannot write cache entry %s: %v", key[:10], err)
		return
	}
	c.hot.Add(key, text)
	c.log.Debugf("cached response as %s", key[:10])
}

// EvictOlderThan removes entries whose modification time exceeds maxAge
// and returns how many were removed. Failures on individual entries are
// logged and swallowed.
func (c *Cache) EvictOlderThan(maxAge time.Duration) int {
	if !c.enabled {
		return 0
	}
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		c.log.Warnf("cannot enumerate cache directory: %v", err)
		return 0
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			c.log.Warnf("cannot stat cache entry %s: %v", entry.Name(), err)
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil {
				c.log.Warnf("cannot evict cache entry %s: %v", entry.Name(), err)
				continue
			}
			c.hot.Remove(entry.Name())
			removed++
		}
	}
	if removed > 0 {
		c.log.Debugf("evicted %d cache entries older than %v", removed, maxAge)
	}
	return removed
}
