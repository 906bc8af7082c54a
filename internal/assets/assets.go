// Package assets loads model meshes and caches them per path.
package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/dentview/internal/logger"
	"github.com/Faultbox/dentview/internal/scene"
)

// ErrNotFound is returned when a mesh file does not exist.
var ErrNotFound = errors.New("asset not found")

// Status reports the progress of a background load.
type Status int

const (
	// StatusNone means the path was never requested.
	StatusNone Status = iota
	StatusPending
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "none"
	}
}

type request struct {
	status Status
	group  *scene.Group
	err    error
}

// Loader reads mesh files from a file system. Raw bytes and parsed groups are
// cached per path; callers always receive instances whose materials they own.
type Loader struct {
	fsys  fs.FS
	cache *Cache
	log   *zap.Logger

	mu       sync.RWMutex
	groups   map[string]*scene.Group
	requests map[string]*request

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewLoader creates a loader reading from fsys.
func NewLoader(fsys fs.FS) *Loader {
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		fsys:     fsys,
		cache:    NewCache(),
		log:      logger.Named("assets"),
		groups:   make(map[string]*scene.Group),
		requests: make(map[string]*request),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Load reads and parses path, blocking until done.
func (l *Loader) Load(ctx context.Context, path string) (*scene.Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	g, ok := l.groups[path]
	l.mu.RUnlock()
	if ok {
		return g.Instance(), nil
	}

	data, err := l.read(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g, err = ParseOBJ(path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	l.mu.Lock()
	if cached, ok := l.groups[path]; ok {
		g = cached
	} else {
		l.groups[path] = g
	}
	l.mu.Unlock()

	l.log.Debug("mesh loaded",
		zap.String("path", path),
		zap.Int("meshes", len(g.Meshes)),
		zap.Int("bytes", len(data)))
	return g.Instance(), nil
}

func (l *Loader) read(path string) ([]byte, error) {
	if data, ok := l.cache.Get(path); ok {
		return data, nil
	}
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	l.cache.Set(path, data)
	return data, nil
}

// Request starts loading path in the background. Repeated requests for the
// same path are ignored.
func (l *Loader) Request(path string) {
	l.mu.Lock()
	if _, ok := l.requests[path]; ok {
		l.mu.Unlock()
		return
	}
	req := &request{status: StatusPending}
	l.requests[path] = req
	l.mu.Unlock()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		g, err := l.Load(l.ctx, path)

		l.mu.Lock()
		defer l.mu.Unlock()
		if err != nil {
			req.status, req.err = StatusFailed, err
			l.log.Error("mesh load failed", zap.String("path", path), zap.Error(err))
			return
		}
		req.status, req.group = StatusReady, g
	}()
}

// Lookup reports the state of a requested path. When ready, it returns a new
// instance of the loaded group.
func (l *Loader) Lookup(path string) (*scene.Group, Status, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	req, ok := l.requests[path]
	if !ok {
		return nil, StatusNone, nil
	}
	if req.status == StatusReady {
		return req.group.Instance(), StatusReady, nil
	}
	return nil, req.status, req.err
}

// Wait blocks until every requested load has finished.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Close cancels pending loads and drops all cached data.
func (l *Loader) Close() {
	l.cancel()
	l.wg.Wait()

	l.mu.Lock()
	clear(l.groups)
	clear(l.requests)
	l.mu.Unlock()
	l.cache.Clear()
}

// CacheStats returns raw-byte cache hits and misses.
func (l *Loader) CacheStats() (hits, misses int) {
	return l.cache.Stats()
}

// Cache is a simple in-memory cache for raw file contents.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear empties the cache and resets its stats.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.data)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
