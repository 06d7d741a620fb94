package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/launcher"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

const (
	// DefaultPattern matches every supported catalog format.
	DefaultPattern = "**/*.{yaml,yml,toml,json}"
	// DefaultSearchCacheSize bounds the memoized search results.
	DefaultSearchCacheSize = 128
)

// ErrInvalidEntry is returned for entries without an application id.
var ErrInvalidEntry = errors.New("invalid catalog entry")

// Entry is the desktop metadata of one application.
type Entry struct {
	AppID       string   `yaml:"id" toml:"id" json:"id"`
	Name        string   `yaml:"name" toml:"name" json:"name"`
	Icon        string   `yaml:"icon" toml:"icon" json:"icon"`
	DesktopFile string   `yaml:"desktop_file" toml:"desktop_file" json:"desktop_file"`
	Keywords    []string `yaml:"keywords" toml:"keywords" json:"keywords"`
}

func (e Entry) matches(query string) bool {
	if strings.Contains(strings.ToLower(e.AppID), query) || strings.Contains(strings.ToLower(e.Name), query) {
		return true
	}
	for _, k := range e.Keywords {
		if strings.Contains(strings.ToLower(k), query) {
			return true
		}
	}
	return false
}

// Catalog is a concurrency-safe set of entries keyed by application id.
type Catalog struct {
	mu        sync.RWMutex
	entries   map[string]Entry
	searches  *lru.Cache[string, []Entry]
	sanitizer *bluemonday.Policy
	logger    *zap.Logger
}

// New creates an empty catalog. A non-positive cacheSize uses
// DefaultSearchCacheSize.
func New(cacheSize int, logger *zap.Logger) (*Catalog, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultSearchCacheSize
	}
	cache, err := lru.New[string, []Entry](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create search cache: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		entries:   make(map[string]Entry),
		searches:  cache,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.Named("catalog"),
	}, nil
}

// Add stores e, replacing an entry with the same id. Markup is stripped
// from the display name and keywords.
func (c *Catalog) Add(e Entry) error {
	e.AppID = strings.TrimSpace(e.AppID)
	if e.AppID == "" {
		return fmt.Errorf("add: %w: missing id", ErrInvalidEntry)
	}
	e.Name = strings.TrimSpace(c.sanitizer.Sanitize(e.Name))
	e.Icon = strings.TrimSpace(c.sanitizer.Sanitize(e.Icon))
	var keywords []string
	for _, k := range e.Keywords {
		keywords = append(keywords, c.sanitizer.Sanitize(k))
	}
	e.Keywords = keywords

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[e.AppID] = e
	c.searches.Purge()
	return nil
}

// Remove deletes appID and reports whether it was present.
func (c *Catalog) Remove(appID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[appID]
	if ok {
		delete(c.entries, appID)
		c.searches.Purge()
	}
	return ok
}

// Get returns the entry for appID.
func (c *Catalog) Get(appID string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[appID]
	return e, ok
}

// Resolve implements launcher.MetadataResolver.
func (c *Catalog) Resolve(appID string) (launcher.Metadata, bool) {
	e, ok := c.Get(appID)
	if !ok {
		return launcher.Metadata{}, false
	}
	return launcher.Metadata{
		Name:        e.Name,
		Icon:        e.Icon,
		DesktopFile: e.DesktopFile,
		Keywords:    append([]string(nil), e.Keywords...),
	}, true
}

// All returns every entry ordered by application id.
func (c *Catalog) All() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sortedLocked()
}

func (c *Catalog) sortedLocked() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppID < out[j].AppID })
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Search returns the entries whose id, name or keywords contain query,
// case-insensitively, ordered by application id. An empty query matches
// everything.
func (c *Catalog) Search(query string) []Entry {
	query = strings.ToLower(strings.TrimSpace(query))

	// the read lock keeps a concurrent Add from purging between compute and store
	c.mu.RLock()
	defer c.mu.RUnlock()
	if hits, ok := c.searches.Get(query); ok {
		return append([]Entry(nil), hits...)
	}

	var hits []Entry
	for _, e := range c.sortedLocked() {
		if query == "" || e.matches(query) {
			hits = append(hits, e)
		}
	}
	c.searches.Add(query, hits)
	return append([]Entry(nil), hits...)
}

// LoadDir walks root and adds the entries of every file matching pattern
// (relative to root). Files that fail to decode are logged and skipped. It
// returns the number of entries added.
func (c *Catalog) LoadDir(ctx context.Context, root, pattern string) (int, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return 0, fmt.Errorf("invalid catalog pattern %q", pattern)
	}

	var (
		mu    sync.Mutex
		files []string
	)
	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		if ok, _ := doublestar.Match(pattern, filepath.ToSlash(rel)); ok {
			mu.Lock()
			files = append(files, p)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walk catalog %s: %w", root, err)
	}

	// fastwalk visits concurrently; later files override earlier ones by path order
	sort.Strings(files)

	added := 0
	for _, path := range files {
		n, err := c.loadFile(path)
		if err != nil {
			c.logger.Warn("Skipping catalog file", zap.String("path", path), zap.Error(err))
			continue
		}
		added += n
	}

	c.logger.Info("Catalog loaded",
		zap.String("root", root),
		zap.Int("files", len(files)),
		zap.Int("entries", added))
	return added, nil
}

func (c *Catalog) loadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	entries, err := decodeFile(path, data)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, e := range entries {
		if err := c.Add(e); err != nil {
			c.logger.Warn("Skipping catalog entry", zap.String("path", path), zap.Error(err))
			continue
		}
		added++
	}
	return added, nil
}
