// Package announceserver is a development endpoint that answers pingbacks
// the way the production announcement service does: one short plain-text
// line per request.
package announceserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Server answers GET /pingback/{platform}/{version}.
type Server struct {
	message func() string
	router  chi.Router
	log     zerolog.Logger
}

// New creates a server whose reply is produced by message on every request.
func New(message func() string, log zerolog.Logger) *Server {
	s := &Server{message: message, log: log}
	s.router = s.setupRouter()
	return s
}

func (s *Server) setupRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/pingback/{platform}/{version}", s.handlePingback)
	return r
}

// Handler returns the router for mounting or testing.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handlePingback(w http.ResponseWriter, r *http.Request) {
	// chi matches on RawPath when the request needed one, so the parameter
	// is still escaped in that case.
	version := chi.URLParam(r, "version")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(version)
		if err != nil {
			http.Error(w, "bad version", http.StatusBadRequest)
			return
		}
		version = unescaped
	}

	q := r.URL.Query()
	s.log.Info().
		Str("request_id", middleware.GetReqID(r.Context())).
		Str("platform", chi.URLParam(r, "platform")).
		Str("version", version).
		Str("system", q.Get("s")).
		Str("release", q.Get("r")).
		Str("machine", q.Get("m")).
		Msg("Pingback received")

	var msg string
	if s.message != nil {
		msg = s.message()
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, msg)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	s.log.Info().Str("addr", ln.Addr().String()).Msg("Announcement server started")

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}
