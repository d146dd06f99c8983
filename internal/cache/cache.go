package cache

import (
	"strings"
	"sync"

	"frutbras-service/internal/util"
)

// QueryCache holds this instance's read-through copies of remote query
// results, keyed by table plus query qualifiers. A change notification for a
// table marks every key under it stale; stale entries miss on the next read,
// forcing a refetch. Values are only replaced, never patched.
type QueryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
}

type entry struct {
	value interface{}
	stale bool
}

// New creates an empty query cache
func New() *QueryCache {
	return &QueryCache{entries: make(map[string]entry)}
}

// Key builds a cache key from a table name and query qualifiers,
// e.g. Key("products", "category", "pescados").
func Key(table string, qualifiers ...string) string {
	if len(qualifiers) == 0 {
		return table
	}
	return table + ":" + strings.Join(qualifiers, ":")
}

func tableOf(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}

// Get returns the cached value for key. Stale or absent entries report a miss.
func (c *QueryCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || e.stale {
		util.CacheMissesTotal.WithLabelValues(tableOf(key)).Inc()
		return nil, false
	}

	util.CacheHitsTotal.WithLabelValues(tableOf(key)).Inc()
	return e.value, true
}

// Set stores a fresh value for key, clearing any stale mark
func (c *QueryCache) Set(key string, value interface{}) {
	c.mu.Lock()
	c.entries[key] = entry{value: value}
	c.mu.Unlock()
}

// Invalidate marks every query keyed to the table stale, derived queries
// included. The entries stay in place so a later Set simply overwrites them.
func (c *QueryCache) Invalidate(table string) {
	c.mu.Lock()
	for key, e := range c.entries {
		if key == table || strings.HasPrefix(key, table+":") {
			e.stale = true
			c.entries[key] = e
		}
	}
	c.mu.Unlock()

	util.CacheInvalidationsTotal.WithLabelValues(table).Inc()
}

// IsStale reports whether the key is present but marked stale
func (c *QueryCache) IsStale(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return ok && e.stale
}
