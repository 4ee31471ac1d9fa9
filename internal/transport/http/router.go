package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func newRouter(engine Asker, analytics statsSource) http.Handler {
	h := &Handler{engine: engine, analytics: analytics}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors)

	r.Get("/", h.root)
	r.Get("/health", h.health)
	r.Route("/api", func(r chi.Router) {
		r.Post("/ask", h.ask)
		r.Get("/stats", h.stats)
		r.Get("/suggestions", h.suggestions)
	})
	return r
}
