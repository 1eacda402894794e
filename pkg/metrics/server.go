package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/fsm/pkg/logger"
)

var (
	ErrStart    = errors.New("metrics server failed to start")
	ErrShutdown = errors.New("metrics server shutdown failed")
)

// Server exposes a Prometheus gatherer on /metrics with graceful shutdown.
type Server struct {
	gatherer        prometheus.Gatherer
	log             *slog.Logger
	shutdownTimeout time.Duration

	mu  sync.Mutex
	srv *http.Server
}

// ServerOption configures the metrics server.
type ServerOption func(*Server)

// WithServerLogger sets the logger for server lifecycle messages.
func WithServerLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithShutdownTimeout sets the time allowed for graceful shutdown.
func WithShutdownTimeout(d time.Duration) ServerOption {
	if d <= 0 {
		panic("WithShutdownTimeout: duration must be > 0")
	}
	return func(s *Server) { s.shutdownTimeout = d }
}

// NewServer returns a server for g. It does not listen until Start.
func NewServer(g prometheus.Gatherer, opts ...ServerOption) *Server {
	s := &Server{
		gatherer:        g,
		log:             slog.New(slog.DiscardHandler),
		shutdownTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start listens on addr and serves in the background. It returns the bound
// address, which differs from addr when a zero port is requested.
func (s *Server) Start(addr string) (net.Addr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv != nil {
		return nil, errors.Join(ErrStart, errors.New("server already running"))
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Join(ErrStart, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	s.srv = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func(srv *http.Server) {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("metrics server stopped", logger.Error(err))
		}
	}(s.srv)

	s.log.Info("serving metrics", slog.String("addr", ln.Addr().String()))
	return ln.Addr(), nil
}

// Shutdown stops the server gracefully. It is a no-op when the server is not
// running, so it is safe for repeated calls and before Start. A stopped
// server can be started again.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.srv = nil
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrShutdown, err)
	}
	s.log.Info("metrics server stopped")
	return nil
}
