package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/dmitrymomot/dashkit/pkg/logger"
)

// Server wraps http.Server with context-driven graceful shutdown.
type Server struct {
	cfg        Config
	logger     *slog.Logger
	onShutdown []func(context.Context)

	srv  *http.Server
	addr net.Addr
	mu   sync.Mutex
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Defaults to a logger that discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithShutdownHook registers a function that runs after the listener has
// stopped accepting connections and in-flight requests have finished.
func WithShutdownHook(fn func(context.Context)) Option {
	return func(s *Server) {
		if fn != nil {
			s.onShutdown = append(s.onShutdown, fn)
		}
	}
}

// New returns a Server for cfg.
func New(cfg Config, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg.withDefaults(),
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run serves handler until ctx is cancelled, then shuts down gracefully
// within Config.ShutdownTimeout. Listen failures are wrapped with ErrStart,
// shutdown failures with ErrShutdown.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, errors.New("server already running"))
	}
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, err)
	}
	s.srv = &http.Server{
		Handler:      handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}
	s.addr = ln.Addr()
	srv := s.srv
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "http server started", slog.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return errors.Join(ErrStart, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()

	shutdownErr := srv.Shutdown(shutdownCtx)
	<-errCh

	for _, fn := range s.onShutdown {
		fn(shutdownCtx)
	}

	if shutdownErr != nil {
		s.logger.ErrorContext(ctx, "http server shutdown failed", logger.Error(shutdownErr))
		return errors.Join(ErrShutdown, shutdownErr)
	}
	s.logger.InfoContext(ctx, "http server stopped")
	return nil
}

// Addr returns the bound listener address, or nil before Run.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}
