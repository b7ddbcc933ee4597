package cache

import "time"

// LayeredCache fronts a DiskCache with a MemoryCache, so embedding vectors
// are served from memory within a process and survive restarts on disk.
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// NewLayeredCache creates a memory-over-disk cache rooted at dir. Both
// layers share the same TTL.
func NewLayeredCache(dir string, ttl, cleanupInterval time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(ttl, cleanupInterval),
		disk:   NewDiskCache(dir, ttl),
	}
}

// Get checks memory first; disk hits are promoted back into memory
func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}

	if val, found := c.disk.Get(key); found {
		_ = c.memory.Set(key, val, 0)
		return val, true
	}

	return nil, false
}

// Set stores a value in both layers
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, value, ttl)
}

// Delete removes a value from both layers
func (c *LayeredCache) Delete(key string) error {
	if err := c.memory.Delete(key); err != nil {
		return err
	}
	return c.disk.Delete(key)
}

// Clear removes all values from both layers
func (c *LayeredCache) Clear() error {
	if err := c.memory.Clear(); err != nil {
		return err
	}
	return c.disk.Clear()
}
