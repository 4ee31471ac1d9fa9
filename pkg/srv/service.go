// Package srv runs the app's long-lived components under one lifecycle.
package srv

import (
	"context"

	"github.com/sandevgo/sanibot/pkg/log"
)

// Service is a long-running component with a blocking Start and a Shutdown
// that releases its resources.
type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// StartServices launches every service on its own goroutine. A service
// that fails to start takes the process down.
func StartServices(ctx context.Context, services []Service) {
	logger := log.FromCtx(ctx)
	for _, s := range services {
		go func() {
			if err := s.Start(ctx); err != nil {
				logger.Fatal().Err(err).Msgf("%T failed to start", s)
			}
		}()
	}
}

// ShutdownServices blocks until ctx is canceled, then shuts services down
// in slice order. Callers list writers before the stores they write to.
func ShutdownServices(ctx context.Context, services []Service) {
	<-ctx.Done()
	logger := log.FromCtx(ctx)
	for _, s := range services {
		if err := s.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msgf("%T failed to shutdown", s)
		}
	}
}
