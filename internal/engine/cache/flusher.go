package cache

import (
	"context"
	"time"

	"github.com/sandevgo/sanibot/pkg/log"
)

const defaultFlushInterval = 5 * time.Minute

// Flusher periodically writes the cache through its store and flushes
// one last time on shutdown.
type Flusher struct {
	cache    *Cache
	Interval time.Duration
}

func NewFlusher(c *Cache) *Flusher {
	return &Flusher{cache: c, Interval: defaultFlushInterval}
}

func (f *Flusher) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Dur("interval", f.Interval).Msg("starting cache flusher")

	ticker := time.NewTicker(f.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := f.cache.Flush(ctx); err != nil {
				logger.Error().Err(err).Msg("periodic cache flush failed")
			}
		}
	}
}

func (f *Flusher) Shutdown(ctx context.Context) error {
	// ctx is already canceled when shutdown begins; the final flush still
	// has to reach the store.
	return f.cache.Flush(context.WithoutCancel(ctx))
}
