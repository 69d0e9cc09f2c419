package texture

import (
	"image"
	"sync"

	"planet-renderer/internal/logging"
)

// Resolver resolves a map name to a decoded image.
type Resolver interface {
	Resolve(name string) *image.NRGBA
}

// Cache is a concurrency-safe map cache. Batch jobs that share a map decode
// it once.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
	log   *logging.Logger
}

// cacheEntry records a load attempt; img is nil when it failed.
type cacheEntry struct {
	img *image.NRGBA
}

// NewCache creates a new map cache backed by the given index.
func NewCache(index *Index, log *logging.Logger) *Cache {
	if log == nil {
		log = logging.Default()
	}
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
		log:   log,
	}
}

// Resolve loads and caches a map by name. Returns nil if not found or not
// decodable.
func (c *Cache) Resolve(name string) *image.NRGBA {
	path, ok := c.index.ResolvePath(name)
	if !ok {
		c.log.Warn("map %q not found", name)
		return nil
	}
	return c.Load(path)
}

// Load loads and caches a map by file path.
func (c *Cache) Load(path string) *image.NRGBA {
	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	img, err := LoadMap(path)
	if err != nil {
		c.log.Warn("%v", err)
	} else {
		c.log.Debug("loaded map %s (%dx%d)", path, img.Bounds().Dx(), img.Bounds().Dy())
	}

	// Write lock with double-check
	c.mu.Lock()
	if entry, exists := c.items[path]; exists {
		c.mu.Unlock()
		return entry.img
	}
	c.items[path] = &cacheEntry{img: img}
	c.mu.Unlock()

	return img
}
