package core

import (
	"time"

	"github.com/wagonlab/railscan/schema"
)

// defaultCacheCapacity bounds each analysis cache; the oldest entry by
// insertion order is evicted once the capacity is exceeded.
const defaultCacheCapacity = 10

// analysisKey is the strongly-typed cache key: threshold plus the window
// bounds at microsecond precision. Two identical windows always produce
// equal keys (value equality), and any window change produces a new key.
type analysisKey struct {
	threshold   float64
	windowStart int64 // UnixMicro
	windowEnd   int64 // UnixMicro
}

// keyFor derives the cache key for a threshold and window.
func keyFor(threshold float64, window schema.TimeRange) analysisKey {
	return analysisKey{
		threshold:   threshold,
		windowStart: window.Start.UnixMicro(),
		windowEnd:   window.End.UnixMicro(),
	}
}

// WindowToken renders the opaque window token exposed for diagnostics. It
// changes if and only if the window changes.
func WindowToken(window schema.TimeRange) string {
	return time.UnixMicro(window.Start.UnixMicro()).UTC().Format(time.RFC3339Nano) +
		"/" + time.UnixMicro(window.End.UnixMicro()).UTC().Format(time.RFC3339Nano)
}

// fifoCache is a bounded insertion-order cache. It is not safe for
// concurrent use on its own; the owning Model serializes access.
type fifoCache[V any] struct {
	capacity int
	entries  map[analysisKey]V
	order    []analysisKey
}

func newFifoCache[V any](capacity int) *fifoCache[V] {
	if capacity <= 0 {
		capacity = defaultCacheCapacity
	}
	return &fifoCache[V]{
		capacity: capacity,
		entries:  make(map[analysisKey]V, capacity),
	}
}

// Get returns the cached value for key, if present. Hits return the stored
// value as-is; callers must treat it as shared and read-only.
func (c *fifoCache[V]) Get(key analysisKey) (V, bool) {
	v, ok := c.entries[key]
	return v, ok
}

// Put stores a value, evicting the oldest insertion once over capacity.
// Re-putting an existing key refreshes the value but keeps its position.
func (c *fifoCache[V]) Put(key analysisKey, value V) {
	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
		if len(c.order) > c.capacity {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
	}
	c.entries[key] = value
}

// Clear drops every entry.
func (c *fifoCache[V]) Clear() {
	c.entries = make(map[analysisKey]V, c.capacity)
	c.order = nil
}

// Len returns the number of cached entries.
func (c *fifoCache[V]) Len() int {
	return len(c.entries)
}
