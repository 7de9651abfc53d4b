package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/routemux/routemux/internal/config"
	"github.com/routemux/routemux/internal/middleware"
	"github.com/routemux/routemux/internal/observability"
	"github.com/routemux/routemux/internal/router"
)

// Default listener settings applied when the configuration leaves them
// unset.
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultIdleTimeout    = 120 * time.Second
	DefaultMaxHeaderBytes = 1 << 20
)

// Server hosts the route dispatcher behind an HTTP listener.
type Server struct {
	cfg        *config.ServerConfig
	dispatcher *router.Dispatcher
	logger     observability.Logger
	tracer     *observability.Tracer
	httpServer *http.Server
	mu         sync.Mutex
	running    bool
}

// Option configures the server.
type Option func(*Server)

// WithServerLogger sets the server's logger.
func WithServerLogger(logger observability.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithTracer enables tracing middleware using the given tracer.
func WithTracer(tracer *observability.Tracer) Option {
	return func(s *Server) {
		s.tracer = tracer
	}
}

// New creates a server around the given route table.
func New(cfg *config.ServerConfig, table *router.Table, opts ...Option) *Server {
	if cfg == nil {
		cfg = &config.ServerConfig{}
	}

	s := &Server{
		cfg:    cfg,
		logger: observability.NopLogger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.dispatcher = router.NewDispatcher(table, router.WithLogger(s.logger))

	return s
}

// Dispatcher returns the server's route dispatcher.
func (s *Server) Dispatcher() *router.Dispatcher {
	return s.dispatcher
}

// Handler builds the complete HTTP handler: operational endpoints, the
// middleware stack, and the route dispatcher. Requests no route
// matches get a 404.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.dispatcher.Dispatch(w, r) == router.NotFound {
			http.NotFound(w, r)
		}
	}))

	middlewares := []middleware.Middleware{
		middleware.Recovery(s.logger),
		middleware.RequestID(),
		middleware.Logging(s.logger),
		middleware.Metrics(),
	}

	if rl := s.cfg.RateLimit; rl != nil && rl.Enabled {
		limiter := middleware.NewRateLimiter(rl.RequestsPerSecond, rl.Burst,
			middleware.WithRateLimiterLogger(s.logger))
		middlewares = append(middlewares, middleware.RateLimit(limiter))
	}

	if s.tracer != nil {
		middlewares = append(middlewares, observability.TracingMiddleware(s.tracer))
	}

	return middleware.Chain(mux, middlewares...)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	port := s.cfg.Port
	if port == 0 {
		port = DefaultPort
	}
	return fmt.Sprintf("%s:%d", s.cfg.Address, port)
}

// Start begins serving. It blocks until the listener fails or the
// server is shut down.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}

	s.httpServer = &http.Server{
		Addr:           s.Addr(),
		Handler:        s.Handler(),
		ReadTimeout:    durationOrDefault(s.cfg.ReadTimeout, DefaultReadTimeout),
		WriteTimeout:   durationOrDefault(s.cfg.WriteTimeout, DefaultWriteTimeout),
		IdleTimeout:    durationOrDefault(s.cfg.IdleTimeout, DefaultIdleTimeout),
		MaxHeaderBytes: intOrDefault(s.cfg.MaxHeaderBytes, DefaultMaxHeaderBytes),
	}

	s.running = true
	s.mu.Unlock()

	s.logger.Info("starting HTTP server",
		observability.String("address", s.httpServer.Addr),
		observability.Int("routes", s.dispatcher.Table().Len()),
	)

	err := s.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight requests
// up to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.httpServer == nil {
		return nil
	}
	s.running = false

	s.logger.Info("shutting down HTTP server")

	return s.httpServer.Shutdown(ctx)
}

func durationOrDefault(d config.Duration, fallback time.Duration) time.Duration {
	if d.Duration() > 0 {
		return d.Duration()
	}
	return fallback
}

func intOrDefault(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
