// Package api exposes the review session over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/gyeh/claimview/internal/session"
)

// Server serves the claim review API for one session.
type Server struct {
	session *session.Controller
	log     zerolog.Logger
}

// NewRouter returns the HTTP handler for the review API.
func NewRouter(c *session.Controller, log zerolog.Logger) http.Handler {
	s := &Server{session: c, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/claim", s.handleClaim)
		r.Post("/claim/reload", s.handleReload)
		r.Get("/claim/segments", s.handleSegments)
		r.Get("/claim/bills", s.handleBills)
		r.Post("/jump/{page}", s.handleJump)
		r.Get("/viewer", s.handleViewer)
		r.Post("/viewer/retry", s.handleViewerRetry)
		r.Get("/viewer/pages/{page}", s.handleRenderPage)
	})
	return r
}

func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Str("request_id", middleware.GetReqID(r.Context())).
				Dur("duration", time.Since(start)).
				Msg("http request")
		})
	}
}
