package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jsamuelsen11/todo-api/internal/platform/config"
)

// DefaultDrainTimeout bounds how long Run waits for in-flight requests after
// its context ends.
const DefaultDrainTimeout = 15 * time.Second

// Server serves the todo API until its context is canceled, then drains.
type Server struct {
	http         *http.Server
	drainTimeout time.Duration
	logger       *slog.Logger
}

// ServerOption adjusts a Server.
type ServerOption func(*Server)

// WithDrainTimeout overrides DefaultDrainTimeout.
func WithDrainTimeout(d time.Duration) ServerOption {
	return func(s *Server) { s.drainTimeout = d }
}

// NewServer binds handler to cfg.Host:cfg.Port with cfg's connection
// timeouts. Server errors from net/http are logged at warn.
func NewServer(cfg config.ServerConfig, handler http.Handler, logger *slog.Logger, opts ...ServerOption) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:           handler,
			ReadHeaderTimeout: cfg.ReadTimeout,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		drainTimeout: DefaultDrainTimeout,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Addr is the configured host:port.
func (s *Server) Addr() string { return s.http.Addr }

// ListenAndRun opens the configured address and calls Run.
func (s *Server) ListenAndRun(ctx context.Context) error {
	ln, err := new(net.ListenConfig).Listen(ctx, "tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.http.Addr, err)
	}
	return s.Run(ctx, ln)
}

// Run serves on ln until ctx ends or serving fails. When ctx ends it stops
// accepting connections and waits up to the drain timeout for in-flight
// requests, returning nil if they all finished.
func (s *Server) Run(ctx context.Context, ln net.Listener) error {
	addr := ln.Addr().String()

	served := make(chan error, 1)
	go func() { served <- s.http.Serve(ln) }()

	s.logger.InfoContext(ctx, "server listening", slog.String("addr", addr))

	select {
	case err := <-served:
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.logger.InfoContext(ctx, "draining connections", slog.Duration("timeout", s.drainTimeout))

	drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.drainTimeout)
	defer cancel()

	err := s.http.Shutdown(drainCtx)
	if serveErr := <-served; !errors.Is(serveErr, http.ErrServerClosed) {
		err = errors.Join(err, serveErr)
	}
	if err != nil {
		return fmt.Errorf("draining connections: %w", err)
	}
	return nil
}
