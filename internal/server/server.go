// Package server wires the HTTP surface: routing, middleware, and the
// extract/proxy handlers.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"streamgate/internal/config"
	"streamgate/internal/logging"
	"streamgate/internal/middleware"
	"streamgate/internal/relay"
	"streamgate/internal/resolve"
)

// Version is stamped at build time via ldflags.
var Version = "dev"

// Server holds the service dependencies.
type Server struct {
	cfg      *config.Config
	resolver *resolve.Resolver
	relay    *relay.Relay
	start    time.Time
}

// New creates a Server from the given configuration.
func New(cfg *config.Config) *Server {
	return &Server{
		cfg:      cfg,
		resolver: resolve.New(cfg),
		relay:    relay.New(cfg),
		start:    time.Now(),
	}
}

// Handler builds the full middleware-wrapped handler chain.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/extract", s.handleExtract).Methods(http.MethodPost)
	r.HandleFunc("/proxy", s.handleProxy).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/version", s.handleVersion).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	var handler http.Handler = r
	handler = middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  s.cfg.AllowedOrigins,
		AllowedSuffixes: s.cfg.OriginSuffixes,
	})(handler)
	handler = middleware.Metrics()(handler)
	handler = middleware.Logger()(handler)
	return handler
}

// ListenAndServe runs the HTTP server until ctx is cancelled, then shuts
// down gracefully. Write timeouts are disabled because the proxy endpoint
// streams arbitrarily large media.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("listening on %s", s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
