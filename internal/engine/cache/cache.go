// Package cache memoizes generated answers keyed by normalized
// question and intent, with TTL expiry, LRU eviction and optional
// durable snapshots.
package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sandevgo/sanibot/internal/core"
	"github.com/sandevgo/sanibot/pkg/log"
)

const (
	DefaultCapacity = 100
	DefaultTTL      = 24 * time.Hour

	// A snapshot flush happens every this many writes.
	flushEvery = 10
)

// Cache is an in-memory TTL + LRU response cache, optionally backed by
// a durable store so answers survive restarts.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]*core.CachedEntry
	capacity int
	ttl      time.Duration
	store    core.CacheStore

	hits      int64
	misses    int64
	evictions int64
	sets      int64
	dirty     bool
}

// New builds the cache and restores persisted entries when a store is
// configured. Expired rows are purged during the restore; a broken
// snapshot logs a warning and the cache starts cold.
func New(ctx context.Context, capacity int, ttl time.Duration, store core.CacheStore) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c := &Cache{
		entries:  make(map[string]*core.CachedEntry),
		capacity: capacity,
		ttl:      ttl,
		store:    store,
	}
	if store != nil {
		c.restore(ctx)
	}
	return c
}

func (c *Cache) restore(ctx context.Context) {
	logger := log.FromCtx(ctx)

	rows, err := c.store.LoadEntries(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to restore response cache, starting cold")
		return
	}

	now := time.Now()
	expired := 0
	for i := range rows {
		row := rows[i]
		if now.Sub(row.CreatedAt) >= c.ttl {
			expired++
			continue
		}
		c.entries[row.Key] = &row
	}

	logger.Info().
		Int("entries", len(c.entries)).
		Int("expired", expired).
		Msg("response cache restored")
}

// Get returns the cached payload when present and still fresh. A hit
// refreshes the entry's recency; an expired entry is dropped.
func (c *Cache) Get(question, intent string) (core.CachedAnswer, bool) {
	key := cacheKey(question, intent)

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		if time.Since(e.CreatedAt) < c.ttl {
			c.hits++
			e.LastAccess = time.Now()
			e.AccessCount++
			c.dirty = true
			return e.Payload, true
		}
		delete(c.entries, key)
		c.dirty = true
	}

	c.misses++
	return core.CachedAnswer{}, false
}

// Set stores a payload, evicting the least recently used entry when a
// new key would push the cache past capacity.
func (c *Cache) Set(ctx context.Context, question, intent string, payload core.CachedAnswer) {
	key := cacheKey(question, intent)
	now := time.Now()

	c.mu.Lock()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		c.evictOldest(ctx)
	}
	c.entries[key] = &core.CachedEntry{
		Key:         key,
		Question:    question,
		Intent:      intent,
		Payload:     payload,
		CreatedAt:   now,
		LastAccess:  now,
		AccessCount: 1,
	}
	c.dirty = true
	c.sets++
	flush := c.store != nil && c.sets%flushEvery == 0
	c.mu.Unlock()

	if flush {
		if err := c.Flush(ctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msg("failed to flush response cache")
		}
	}
}

// evictOldest drops the entry next in eviction order. Callers must
// hold c.mu.
func (c *Cache) evictOldest(ctx context.Context) {
	var victim *core.CachedEntry
	var victimKey string
	for key, e := range c.entries {
		if victim == nil || evictBefore(e, key, victim, victimKey) {
			victim, victimKey = e, key
		}
	}
	if victim == nil {
		return
	}

	delete(c.entries, victimKey)
	c.evictions++
	log.FromCtx(ctx).Debug().
		Str("question", victim.Question).
		Int("size", len(c.entries)).
		Msg("response cache eviction")
}

// evictBefore orders entries for eviction: least recently used first,
// ties broken by creation time, then key.
func evictBefore(a *core.CachedEntry, aKey string, b *core.CachedEntry, bKey string) bool {
	at, bt := a.LastAccess, b.LastAccess
	if at.IsZero() {
		at = a.CreatedAt
	}
	if bt.IsZero() {
		bt = b.CreatedAt
	}
	if !at.Equal(bt) {
		return at.Before(bt)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return aKey < bKey
}

// Flush writes the current entries through the store. A clean cache is
// a no-op.
func (c *Cache) Flush(ctx context.Context) error {
	if c.store == nil {
		return nil
	}

	c.mu.Lock()
	if !c.dirty {
		c.mu.Unlock()
		return nil
	}
	snapshot := make([]core.CachedEntry, 0, len(c.entries))
	for _, e := range c.entries {
		snapshot = append(snapshot, *e)
	}
	c.dirty = false
	c.mu.Unlock()

	sort.Slice(snapshot, func(i, j int) bool { return snapshot[i].Key < snapshot[j].Key })

	if err := c.store.SaveEntries(ctx, snapshot); err != nil {
		c.mu.Lock()
		c.dirty = true
		c.mu.Unlock()
		return fmt.Errorf("failed to save cache entries: %w", err)
	}
	return nil
}

// Size returns the current number of entries.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops every entry and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*core.CachedEntry)
	c.hits, c.misses, c.evictions, c.sets = 0, 0, 0, 0
	c.dirty = true
}

// Stats reports size and hit accounting for the /api/stats surface.
func (c *Cache) Stats() core.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.hits + c.misses
	rate := 0.0
	if total > 0 {
		rate = float64(c.hits) / float64(total) * 100
	}
	return core.CacheStats{
		Size:          len(c.entries),
		Capacity:      c.capacity,
		Hits:          c.hits,
		Misses:        c.misses,
		Evictions:     c.evictions,
		HitRate:       fmt.Sprintf("%.1f%%", rate),
		TotalRequests: total,
	}
}

func cacheKey(question, intent string) string {
	combined := strings.ToLower(strings.TrimSpace(question)) + "_" + intent
	sum := md5.Sum([]byte(combined))
	return hex.EncodeToString(sum[:])
}
