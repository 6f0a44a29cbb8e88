package layout

import (
	"hash/fnv"
)

// Cache caches computed line layouts, validated by a hash of the line text.
// A stale entry (same line number, different text) is recomputed on access,
// so callers do not have to invalidate on every edit.
type Cache struct {
	entries map[uint32]*cacheEntry
	engine  *Engine
	maxSize int
	tick    uint64 // logical clock for LRU eviction

	hits      uint64
	misses    uint64
	evictions uint64
}

type cacheEntry struct {
	layout     *LineLayout
	lineHash   uint64 // Hash of line content for validation
	lastAccess uint64
}

// CacheStats contains cache statistics.
type CacheStats struct {
	Size      int
	MaxSize   int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// NewCache creates a new line layout cache.
// maxSize is the maximum number of lines to cache (0 = unlimited).
func NewCache(engine *Engine, maxSize int) *Cache {
	if maxSize < 0 {
		maxSize = 0
	}
	return &Cache{
		entries: make(map[uint32]*cacheEntry),
		engine:  engine,
		maxSize: maxSize,
	}
}

// Get retrieves or computes the layout for a line.
// The text parameter is the current line content used for validation.
func (c *Cache) Get(line uint32, text string) *LineLayout {
	hash := hashLine(text)
	c.tick++

	if entry, ok := c.entries[line]; ok && entry.lineHash == hash {
		entry.lastAccess = c.tick
		c.hits++
		return entry.layout
	}

	c.misses++
	layout := c.engine.Layout(text, line)

	c.entries[line] = &cacheEntry{
		layout:     layout,
		lineHash:   hash,
		lastAccess: c.tick,
	}
	if c.maxSize > 0 && len(c.entries) > c.maxSize {
		c.evict()
	}
	return layout
}

// InvalidateAll clears the entire cache.
// Required after layout parameters (wrap width, tab width) change.
func (c *Cache) InvalidateAll() {
	c.entries = make(map[uint32]*cacheEntry)
}

// evict removes the least recently used quarter of the entries.
func (c *Cache) evict() {
	target := c.maxSize * 3 / 4
	for len(c.entries) > target {
		var oldestLine uint32
		oldest := ^uint64(0)
		for line, e := range c.entries {
			if e.lastAccess < oldest {
				oldest = e.lastAccess
				oldestLine = line
			}
		}
		delete(c.entries, oldestLine)
		c.evictions++
	}
}

// Size returns the number of cached entries.
func (c *Cache) Size() int {
	return len(c.entries)
}

// Stats returns cache statistics.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Size:      len(c.entries),
		MaxSize:   c.maxSize,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

// Engine returns the layout engine.
func (c *Cache) Engine() *Engine {
	return c.engine
}

// hashLine computes a hash of line content.
func hashLine(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
