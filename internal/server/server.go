// Package server hosts the HTTP server lifecycle and its listeners.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/taskdo/taskdo-server/internal/logger"
	"github.com/taskdo/taskdo-server/internal/model"
)

// HTTPServer serves the web routes over a listener supplied by a security
// layer.
type HTTPServer struct {
	server *http.Server
	addr   string
	logger *logger.Logger
}

var _ model.Server = (*HTTPServer)(nil)

// NewHTTPServer creates an HTTP server for the given handler and address.
func NewHTTPServer(handler http.Handler, addr string, logger *logger.Logger) *HTTPServer {
	return &HTTPServer{
		server: &http.Server{Handler: handler},
		addr:   addr,
		logger: logger,
	}
}

// Start opens the listener through the security layer and serves until the
// server is stopped. It blocks; a clean shutdown returns nil.
func (s *HTTPServer) Start(securityLayer model.SecurityLayer) error {
	listener, err := securityLayer.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	s.logger.Info("HTTP server: listening", "address", s.addr)

	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}

	return nil
}

// Stop shuts the server down gracefully, waiting for in-flight requests up
// to the context deadline.
func (s *HTTPServer) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server: shutting down")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

// Address returns the address the server listens on.
func (s *HTTPServer) Address() string {
	return s.addr
}
