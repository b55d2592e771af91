package scraper

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// DefaultCacheTTL keeps a fetched page for a week. Game logs of finished
// seasons never change, and in-season pages only gain rows.
const DefaultCacheTTL = 7 * 24 * time.Hour

const pageExt = ".html"

// PageCache stores fetched pages on disk with a TTL. Entries are keyed by URL;
// the file's modification time is its cache time.
type PageCache struct {
	Dir string
	TTL time.Duration
}

// NewPageCache returns a cache rooted at dir with the default TTL.
func NewPageCache(dir string) *PageCache {
	return &PageCache{Dir: dir, TTL: DefaultCacheTTL}
}

func (c *PageCache) path(url string) string {
	return filepath.Join(c.Dir, uuid.NewSHA1(uuid.NameSpaceURL, []byte(url)).String()+pageExt)
}

// Get returns the cached page for url. A missing or expired entry is a miss;
// expired entries are removed.
func (c *PageCache) Get(url string) ([]byte, bool) {
	p := c.path(url)
	info, err := os.Stat(p)
	if err != nil {
		return nil, false
	}

	if time.Since(info.ModTime()) > c.TTL {
		_ = os.Remove(p)
		return nil, false
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores page under url.
func (c *PageCache) Set(url string, page []byte) error {
	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return errors.Wrap(err, "creating cache directory")
	}

	// Write to a temp file first so a crash never leaves half a page behind.
	p := c.path(url)
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, page, 0644); err != nil {
		return errors.Wrap(err, "writing cached page")
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "renaming cached page")
	}
	return nil
}

// CleanExpired removes expired entries and returns how many were removed.
func (c *PageCache) CleanExpired() int {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		return 0
	}

	removed := 0
	now := time.Now()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), pageExt) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) > c.TTL {
			if os.Remove(filepath.Join(c.Dir, e.Name())) == nil {
				removed++
			}
		}
	}
	return removed
}

// Size returns the number of cached pages, expired or not.
func (c *PageCache) Size() int {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), pageExt) {
			n++
		}
	}
	return n
}
