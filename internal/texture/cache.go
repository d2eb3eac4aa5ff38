package texture

import (
	"fmt"
	"image"
	"os"
	"sync"

	"smartcourt/internal/court"
)

// Resolver resolves a texture name to a decoded RGBA image.
type Resolver interface {
	Resolve(texName string) *image.NRGBA
}

// Source produces a texture on first use.
type Source func() (*image.NRGBA, error)

// Cache is a concurrency-safe texture cache. Each name is produced at
// most once; failures are remembered as nil.
type Cache struct {
	mu      sync.RWMutex
	items   map[string]*cacheEntry
	sources map[string]Source
}

type cacheEntry struct {
	img    *image.NRGBA
	loaded bool // true if we've attempted to load (img may still be nil)
}

// NewCache creates an empty texture cache.
func NewCache() *Cache {
	return &Cache{
		items:   make(map[string]*cacheEntry),
		sources: make(map[string]Source),
	}
}

// Register sets how name is produced. A registration after the texture
// was resolved replaces the cached image on next Resolve.
func (c *Cache) Register(name string, src Source) {
	c.mu.Lock()
	c.sources[name] = src
	delete(c.items, name)
	c.mu.Unlock()
}

// Resolve loads and caches a texture by name. Returns nil if not found.
func (c *Cache) Resolve(texName string) *image.NRGBA {
	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[texName]; exists {
		c.mu.RUnlock()
		return entry.img
	}
	src, ok := c.sources[texName]
	c.mu.RUnlock()
	if !ok {
		return nil
	}

	// Slow path: produce outside the lock
	img, err := src()
	if err != nil {
		fmt.Fprintf(os.Stderr, "texture: %s: %v\n", texName, err)
		img = nil
	}

	// Write lock with double-check
	c.mu.Lock()
	if entry, exists := c.items[texName]; exists {
		c.mu.Unlock()
		return entry.img
	}
	c.items[texName] = &cacheEntry{img: img, loaded: true}
	c.mu.Unlock()

	return img
}

// Procedural returns a source painting c's lines at w×h.
func Procedural(c court.Court, w, h int) Source {
	return func() (*image.NRGBA, error) {
		if w <= 0 || h <= 0 {
			return nil, fmt.Errorf("texture: invalid size %dx%d", w, h)
		}
		return c.Texture(w, h), nil
	}
}

// File returns a source decoding the image at path.
func File(path string) Source {
	return func() (*image.NRGBA, error) {
		return LoadTexture(path)
	}
}

// CourtCache returns a cache with the court surface registered under
// name: the image at override when set, the painted lines otherwise.
func CourtCache(name string, c court.Court, w, h int, override string) *Cache {
	cache := NewCache()
	if override != "" {
		cache.Register(name, File(override))
	} else {
		cache.Register(name, Procedural(c, w, h))
	}
	return cache
}
