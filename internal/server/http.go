package server

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/notes-keeper/internal/logger"
)

const readHeaderTimeout = 5 * time.Second

type httpServer struct {
	server   *http.Server
	listener net.Listener

	logger *logger.Logger
}

func newHTTPServer(handler http.Handler, address string, logger *logger.Logger) (*httpServer, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: http %s: %w", errListening, address, err)
	}

	return &httpServer{
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			ErrorLog:          stdlog.New(logger, "", 0),
		},
		listener: listener,
		logger:   logger,
	}, nil
}

func (h *httpServer) RunServer(_ context.Context) error {
	h.logger.Info().Str("address", h.listener.Addr().String()).Msg("launching HTTP server")

	if err := h.server.Serve(h.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}

	return nil
}

func (h *httpServer) Shutdown(ctx context.Context) error {
	h.logger.Info().Msg("HTTP server shutdown")

	if err := h.server.Shutdown(ctx); err != nil {
		// deadline hit: drop whatever is still open
		h.logger.Err(err).Str("func", "httpServer.Shutdown").Msg("graceful shutdown interrupted, closing connections")
		return errors.Join(err, h.server.Close())
	}

	return nil
}
