// Package grpc exposes the standard grpc.health.v1.Health service of the
// notes backend. Check reports SERVING while the storage answers pings.
package grpc

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/internal/service"
	"github.com/MKhiriev/notes-keeper/internal/utils"
)

// ServiceName is the name under which the notes API reports its health.
// The empty name (overall server health) is answered the same way.
const ServiceName = "notes.v1.Notes"

// Handler is the root gRPC transport handler.
type Handler struct {
	grpc_health_v1.UnimplementedHealthServer

	services *service.Services
	traceIDs *utils.TraceIDGenerator

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		traceIDs: utils.NewTraceIDGenerator(),
		logger:   logger,
	}
}

// Init builds a gRPC server with the health service registered.
func (h *Handler) Init() *grpc.Server {
	server := grpc.NewServer(grpc.ChainUnaryInterceptor(h.withLogging))
	grpc_health_v1.RegisterHealthServer(server, h)

	return server
}

func (h *Handler) Check(ctx context.Context, req *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	if name := req.GetService(); name != "" && name != ServiceName {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", name)
	}

	if err := h.services.HealthService.Check(ctx); err != nil {
		return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_NOT_SERVING}, nil
	}

	return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_SERVING}, nil
}

// withLogging mirrors the HTTP access log: a trace-scoped logger is put in
// the context and every call is logged with its status code.
func (h *Handler) withLogging(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	l := h.logger.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", h.traceIDs.Generate())
	})
	ctx = l.WithContext(ctx)

	start := time.Now()
	resp, err := handler(ctx, req)

	l.Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()

	return resp, err
}
