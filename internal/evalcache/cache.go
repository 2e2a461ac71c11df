// Package evalcache is the bounded evaluation cache: a version-scoped LRU
// store of per-layer-per-frame evaluation results.
//
// Entries are keyed by (layer id, frame) and stamped with the layer
// version they were computed at. A lookup presenting a different version
// is a miss - stale data is never returned, and the stale entry is lazily
// deleted. Invalidation is therefore free: bumping a layer's version in
// the tracker makes every cached frame of that layer unreachable.
//
// The cache is generic over its value type so it stays decoupled from the
// snapshot types in internal/eval.
package evalcache

import "container/list"

// DefaultMaxSize is the default entry capacity. Roughly a few seconds of
// timeline for a mid-sized composition; tune via the engine's
// WithCacheSize option when profiling says otherwise.
const DefaultMaxSize = 512

// Stats reports cache occupancy for diagnostics and telemetry.
type Stats struct {
	Size    int `json:"size"`
	MaxSize int `json:"max_size"`
}

type key struct {
	layerID string
	frame   int
}

type entry[V any] struct {
	key     key
	version int64
	value   V
}

// Cache is a bounded LRU keyed by (layer id, frame) with per-entry
// version stamps. Not safe for concurrent use: the evaluation core is
// single-threaded by contract and the host serializes access.
type Cache[V any] struct {
	maxSize int
	order   *list.List            // front = most recently used
	entries map[key]*list.Element // element value is *entry[V]
}

// New creates a cache bounded to maxSize entries. maxSize must be > 0;
// non-positive values fall back to DefaultMaxSize.
func New[V any](maxSize int) *Cache[V] {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Cache[V]{
		maxSize: maxSize,
		order:   list.New(),
		entries: make(map[key]*list.Element),
	}
}

// Get returns the cached value for (layerID, frame) if it was stored at
// exactly the given version. A version mismatch behaves like absence and
// deletes the stale entry. Hits count as a use for eviction ordering.
func (c *Cache[V]) Get(layerID string, version int64, frame int) (V, bool) {
	var zero V
	k := key{layerID: layerID, frame: frame}
	el, ok := c.entries[k]
	if !ok {
		return zero, false
	}
	ent := el.Value.(*entry[V])
	if ent.version != version {
		c.remove(el)
		return zero, false
	}
	c.order.MoveToFront(el)
	return ent.value, true
}

// Set stores a value for (layerID, frame) at the given version,
// overwriting any prior entry for that key regardless of its version -
// the caller just computed the authoritative value. Inserting past
// capacity evicts least-recently-used entries.
func (c *Cache[V]) Set(layerID string, version int64, frame int, value V) {
	k := key{layerID: layerID, frame: frame}
	if el, ok := c.entries[k]; ok {
		ent := el.Value.(*entry[V])
		ent.version = version
		ent.value = value
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&entry[V]{key: k, version: version, value: value})
	c.entries[k] = el

	for c.order.Len() > c.maxSize {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.remove(oldest)
	}
}

// ClearLayer removes every cached frame for the layer, not just the most
// recent.
func (c *Cache[V]) ClearLayer(layerID string) {
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if el.Value.(*entry[V]).key.layerID == layerID {
			c.remove(el)
		}
		el = next
	}
}

// Clear removes all entries.
func (c *Cache[V]) Clear() {
	c.order.Init()
	c.entries = make(map[key]*list.Element)
}

// Stats returns current occupancy.
func (c *Cache[V]) Stats() Stats {
	return Stats{Size: len(c.entries), MaxSize: c.maxSize}
}

func (c *Cache[V]) remove(el *list.Element) {
	ent := el.Value.(*entry[V])
	c.order.Remove(el)
	delete(c.entries, ent.key)
}
