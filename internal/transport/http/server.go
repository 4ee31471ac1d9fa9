// Package http serves the ask pipeline over REST: the endpoints the web
// frontend talks to plus health and the service banner.
package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/sandevgo/sanibot/internal/config"
	"github.com/sandevgo/sanibot/pkg/log"
	"github.com/sandevgo/sanibot/pkg/srv"
)

type Server struct {
	cfg *config.HTTPConfig
	srv *http.Server
}

var _ srv.Service = (*Server)(nil)

// NewServer builds the API server. Request contexts derive from ctx, so
// handlers log through the application logger.
func NewServer(ctx context.Context, cfg *config.HTTPConfig, engine Asker, analytics statsSource) *Server {
	s := &Server{cfg: cfg}
	s.srv = &http.Server{
		Addr:         cfg.Addr,
		Handler:      newRouter(engine, analytics),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}
	return s
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.cfg.Addr).Msg("starting http server")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests. ctx is the already-canceled signal
// context, so the drain gets its own deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}
