package core

import (
	"context"
	"time"
)

// CacheStore persists response cache entries between runs.
type CacheStore interface {
	SaveEntries(ctx context.Context, entries []CachedEntry) error
	LoadEntries(ctx context.Context) ([]CachedEntry, error)
}

// InteractionStore persists analytics interaction records.
type InteractionStore interface {
	Add(ctx context.Context, rec Interaction) error
	CountAll(ctx context.Context) (int64, error)
	CountSessions(ctx context.Context) (int64, error)
}

// CachedEntry is the durable form of one response cache entry.
type CachedEntry struct {
	Key         string
	Question    string
	Intent      string
	Payload     CachedAnswer
	CreatedAt   time.Time
	LastAccess  time.Time
	AccessCount int64
}
