package repository

import (
	"sync"
	"time"

	"github.com/latoulicious/GEMS/pkg/store"
)

// Cache is a time-bounded read-through cache over entity tables. Every save
// invalidates all entries, not just the written entity, because downstream
// aggregations join across tables.
type Cache struct {
	ttl     time.Duration
	mu      sync.Mutex
	entries map[store.Entity]cacheEntry
}

type cacheEntry struct {
	table     *store.Table
	expiresAt time.Time
}

// NewCache creates a cache with the given TTL. A zero TTL disables caching.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[store.Entity]cacheEntry),
	}
}

// Get returns a copy of the cached table when present and fresh
func (c *Cache) Get(entity store.Entity) (*store.Table, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[entity]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(c.entries, entity)
		return nil, false
	}
	return entry.table.Clone(), true
}

// Put stores a copy of the table
func (c *Cache) Put(entity store.Entity, table *store.Table) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[entity] = cacheEntry{
		table:     table.Clone(),
		expiresAt: time.Now().Add(c.ttl),
	}
}

// InvalidateAll drops every cached table so the next load re-reads the store
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[store.Entity]cacheEntry)
}

// Sweep drops expired entries and returns how many were removed
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	now := time.Now()
	for entity, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, entity)
			removed++
		}
	}
	return removed
}

// CachedStore wraps a Store with the TTL cache
type CachedStore struct {
	inner store.Store
	cache *Cache
}

// NewCachedStore wraps inner so repeated loads within the TTL skip re-parsing
func NewCachedStore(inner store.Store, cache *Cache) *CachedStore {
	return &CachedStore{inner: inner, cache: cache}
}

// Load returns the cached table when fresh, otherwise reads through
func (s *CachedStore) Load(entity store.Entity) (*store.Table, error) {
	if table, ok := s.cache.Get(entity); ok {
		return table, nil
	}

	table, err := s.inner.Load(entity)
	if err != nil {
		return nil, err
	}
	s.cache.Put(entity, table)
	return table, nil
}

// Save writes through and invalidates every cached entity
func (s *CachedStore) Save(entity store.Entity, table *store.Table) error {
	if err := s.inner.Save(entity, table); err != nil {
		return err
	}
	s.cache.InvalidateAll()
	return nil
}
