// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// Entry is a cached value with its expiration.
type Entry[V any] struct {
	Data      V
	ExpiresAt time.Time
}

// Cache is a thread-safe in-memory cache with TTL support.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]Entry[V]
	ttl     time.Duration
	now     func() time.Time
	onEvict func(key string, value V)
	stats   Stats
}

// Stats tracks cache performance metrics
type Stats struct {
	mu          sync.RWMutex
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// New creates a cache whose entries expire ttl after they were last set or
// touched. No background goroutine is started; see Run.
func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]Entry[V]),
		ttl:     ttl,
		now:     time.Now,
		stats: Stats{
			LastCleanup: time.Now(),
		},
	}
}

// WithClock replaces the time source. Intended for tests.
func (c *Cache[V]) WithClock(now func() time.Time) *Cache[V] {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
	return c
}

// OnEvict registers fn to be called for every entry removed by Delete,
// Clear, Cleanup or lazy expiration. Overwrites by Set do not count.
func (c *Cache[V]) OnEvict(fn func(key string, value V)) {
	c.mu.Lock()
	c.onEvict = fn
	c.mu.Unlock()
}

// TTL returns the default time-to-live.
func (c *Cache[V]) TTL() time.Duration {
	return c.ttl
}

// Get retrieves a value. Expired entries are removed and reported as misses.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	now := c.now()
	c.mu.RUnlock()

	var zero V
	if !exists {
		c.recordMiss()
		return zero, false
	}

	if now.After(entry.ExpiresAt) {
		c.expire(key, entry.ExpiresAt)
		c.recordMiss()
		return zero, false
	}

	c.recordHit()
	return entry.Data, true
}

// Touch extends a live entry's expiration by the default TTL.
// It reports false if the entry is missing or already expired.
func (c *Cache[V]) Touch(key string) bool {
	c.mu.Lock()
	entry, exists := c.entries[key]
	now := c.now()
	if !exists || now.After(entry.ExpiresAt) {
		c.mu.Unlock()
		return false
	}
	entry.ExpiresAt = now.Add(c.ttl)
	c.entries[key] = entry
	c.mu.Unlock()
	return true
}

// Set stores a value with the default TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = Entry[V]{
		Data:      value,
		ExpiresAt: c.now().Add(ttl),
	}

	c.stats.mu.Lock()
	c.stats.TotalKeys = int64(len(c.entries))
	c.stats.mu.Unlock()
}

// Delete removes an entry. It reports whether the key was present.
func (c *Cache[V]) Delete(key string) bool {
	c.mu.Lock()
	entry, exists := c.entries[key]
	if exists {
		delete(c.entries, key)
	}
	fn := c.onEvict
	total := len(c.entries)
	c.mu.Unlock()

	if !exists {
		return false
	}
	c.recordEviction(total)
	if fn != nil {
		fn(key, entry.Data)
	}
	return true
}

// Clear removes all entries.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	old := c.entries
	c.entries = make(map[string]Entry[V])
	fn := c.onEvict
	c.mu.Unlock()

	c.stats.mu.Lock()
	c.stats.Evictions += int64(len(old))
	c.stats.TotalKeys = 0
	c.stats.mu.Unlock()

	if fn != nil {
		for key, entry := range old {
			fn(key, entry.Data)
		}
	}
}

// Len returns the number of stored entries, including expired ones not yet
// cleaned up.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetStats returns a snapshot of the cache statistics.
func (c *Cache[V]) GetStats() Stats {
	c.stats.mu.RLock()
	defer c.stats.mu.RUnlock()

	return Stats{
		Hits:        c.stats.Hits,
		Misses:      c.stats.Misses,
		Evictions:   c.stats.Evictions,
		TotalKeys:   c.stats.TotalKeys,
		LastCleanup: c.stats.LastCleanup,
	}
}

// HitRate returns the cache hit rate as a percentage
func (c *Cache[V]) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

// Run calls Cleanup every interval until ctx is done.
func (c *Cache[V]) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.Cleanup()
		}
	}
}

// Cleanup removes all expired entries and returns how many were removed.
func (c *Cache[V]) Cleanup() int {
	c.mu.Lock()
	now := c.now()
	var evicted map[string]V
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			if evicted == nil {
				evicted = make(map[string]V)
			}
			evicted[key] = entry.Data
			delete(c.entries, key)
		}
	}
	total := len(c.entries)
	fn := c.onEvict
	c.mu.Unlock()

	c.stats.mu.Lock()
	c.stats.Evictions += int64(len(evicted))
	c.stats.TotalKeys = int64(total)
	c.stats.LastCleanup = now
	c.stats.mu.Unlock()

	if fn != nil {
		for key, value := range evicted {
			fn(key, value)
		}
	}
	return len(evicted)
}

// expire deletes key if it still holds the entry that expired at expiresAt.
func (c *Cache[V]) expire(key string, expiresAt time.Time) {
	c.mu.Lock()
	entry, exists := c.entries[key]
	if !exists || !entry.ExpiresAt.Equal(expiresAt) {
		// Replaced or touched concurrently.
		c.mu.Unlock()
		return
	}
	delete(c.entries, key)
	total := len(c.entries)
	fn := c.onEvict
	c.mu.Unlock()

	c.recordEviction(total)
	if fn != nil {
		fn(key, entry.Data)
	}
}

// recordHit increments the hit counter
func (c *Cache[V]) recordHit() {
	c.stats.mu.Lock()
	c.stats.Hits++
	c.stats.mu.Unlock()
}

// recordMiss increments the miss counter
func (c *Cache[V]) recordMiss() {
	c.stats.mu.Lock()
	c.stats.Misses++
	c.stats.mu.Unlock()
}

func (c *Cache[V]) recordEviction(total int) {
	c.stats.mu.Lock()
	c.stats.Evictions++
	c.stats.TotalKeys = int64(total)
	c.stats.mu.Unlock()
}

// GenerateKey creates a cache key from the method name and parameters
func GenerateKey(method string, params interface{}) string {
	// Serialize parameters to JSON
	data, err := json.Marshal(params)
	if err != nil {
		// Fallback to simple string key
		return fmt.Sprintf("%s:%v", method, params)
	}

	// Hash the JSON data for a compact key
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", method, hash[:16])
}
