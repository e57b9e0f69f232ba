package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// SignalContext returns a context canceled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// Start listens on the configured address and serves until ctx is canceled,
// then shuts down gracefully within Cfg.ShutdownTimeout.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Cfg.ServerAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.Cfg.ServerAddr, err)
	}
	s.E.Listener = ln
	addr := ln.Addr().String()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.E.Start("")
	}()

	s.logger.Info("Server started", "addr", addr)
	s.publishLifecycle(ctx, TopicServerStarted, addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.Cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Shutting down server", "timeout", s.Cfg.ShutdownTimeout)
	if err := s.E.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.publishLifecycle(shutdownCtx, TopicServerStopped, addr)
	return nil
}

// Addr returns the address the server is listening on, or "" before Start.
func (s *Server) Addr() string {
	if s.E.Listener == nil {
		return ""
	}
	return s.E.Listener.Addr().String()
}
