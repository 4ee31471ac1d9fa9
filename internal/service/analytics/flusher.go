package analytics

import (
	"context"
	"time"

	"github.com/sandevgo/sanibot/pkg/log"
)

const defaultFlushInterval = 5 * time.Minute

// Flusher periodically writes buffered records through to the store and
// flushes one last time on shutdown.
type Flusher struct {
	svc      *Service
	Interval time.Duration
}

func NewFlusher(svc *Service) *Flusher {
	return &Flusher{svc: svc, Interval: defaultFlushInterval}
}

func (f *Flusher) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Dur("interval", f.Interval).Msg("starting analytics flusher")

	ticker := time.NewTicker(f.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := f.svc.Flush(ctx); err != nil {
				logger.Error().Err(err).Msg("periodic analytics flush failed")
			}
		}
	}
}

func (f *Flusher) Shutdown(ctx context.Context) error {
	// ctx is already canceled when shutdown begins; the final flush still
	// has to reach the store.
	return f.svc.Flush(context.WithoutCancel(ctx))
}
