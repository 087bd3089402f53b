package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"

	myGRPC "github.com/MKhiriev/notes-keeper/internal/handler/grpc"
	"github.com/MKhiriev/notes-keeper/internal/logger"
)

type grpcServer struct {
	server   *grpc.Server
	listener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, address string, logger *logger.Logger) (*grpcServer, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: grpc %s: %w", errListening, address, err)
	}

	return &grpcServer{
		server:   handler.Init(),
		listener: listener,
		logger:   logger,
	}, nil
}

func (g *grpcServer) RunServer(_ context.Context) error {
	g.logger.Info().Str("address", g.listener.Addr().String()).Msg("launching gRPC server")

	// ErrServerStopped: Shutdown won the race against Serve
	if err := g.server.Serve(g.listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("grpc server: %w", err)
	}

	return nil
}

func (g *grpcServer) Shutdown(ctx context.Context) error {
	g.logger.Info().Msg("gRPC server shutdown")

	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		g.server.Stop()
		<-stopped
		return ctx.Err()
	}
}
