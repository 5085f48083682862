package index

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"go.uber.org/zap"
)

// Handle is the loaded index. bleve serves each search from the segment
// snapshot current at the time of the call, so the index value doubles as
// the searcher.
type Handle struct {
	Index    bleve.Index
	Snapshot Snapshot
}

// Opener opens an existing index directory. It exists so tests can count
// or fail opens.
type Opener func(dir string) (bleve.Index, error)

// OpenReadOnly opens dir with bleve's read-only runtime option.
func OpenReadOnly(dir string) (bleve.Index, error) {
	return bleve.OpenUsing(dir, map[string]any{"read_only": true})
}

// Cache lazily opens the index once and reuses it for the process lifetime.
type Cache struct {
	dir    string
	open   Opener
	logger *zap.Logger

	mu     sync.Mutex
	handle *Handle
	closed bool
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithOpener replaces OpenReadOnly.
func WithOpener(open Opener) CacheOption {
	return func(c *Cache) {
		c.open = open
	}
}

// NewCache creates a cache for the index at dir. Nothing is opened until
// Ensure is called.
func NewCache(dir string, logger *zap.Logger, opts ...CacheOption) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Cache{
		dir:    dir,
		open:   OpenReadOnly,
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dir returns the configured index directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Ensure returns the cached handle, opening the index on first use.
// A missing directory yields a *ConfigurationError wrapping
// ErrIndexNotFound.
func (c *Cache) Ensure() (*Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if c.handle != nil {
		return c.handle, nil
	}

	info, err := os.Stat(c.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ConfigurationError{Path: c.dir, Err: ErrIndexNotFound}
		}
		return nil, &ConfigurationError{Path: c.dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &ConfigurationError{Path: c.dir, Err: fmt.Errorf("%w: not a directory", ErrIndexNotFound)}
	}

	c.logger.Info("loading search index", zap.String("dir", c.dir))

	idx, err := c.open(c.dir)
	if err != nil {
		return nil, fmt.Errorf("open index %s: %w", c.dir, err)
	}

	snap := Snapshot{Dir: c.dir}
	if count, err := idx.DocCount(); err == nil {
		snap.DocCount = count
	} else {
		c.logger.Warn("could not count indexed documents", zap.Error(err))
	}
	if fp, err := computeFingerprint(c.dir); err == nil {
		snap.Fingerprint = fp
	} else {
		c.logger.Warn("could not fingerprint index", zap.Error(err))
	}

	c.handle = &Handle{Index: idx, Snapshot: snap}
	c.logger.Info("search index loaded",
		zap.Uint64("documents", snap.DocCount),
		zap.String("fingerprint", snap.Fingerprint),
	)
	return c.handle, nil
}

// Ready reports whether the index has been loaded.
func (c *Cache) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handle != nil
}

// Snapshot returns the loaded snapshot, if any.
func (c *Cache) Snapshot() (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == nil {
		return Snapshot{}, false
	}
	return c.handle.Snapshot, true
}

// Close releases the index. Further Ensure calls return ErrClosed.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	if c.handle == nil {
		return nil
	}
	err := c.handle.Index.Close()
	c.handle = nil
	if err != nil {
		c.logger.Error("could not close search index", zap.Error(err))
		return err
	}
	return nil
}
