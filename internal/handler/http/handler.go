package http

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/MKhiriev/notes-keeper/internal/config"
	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/internal/service"
	"github.com/MKhiriev/notes-keeper/internal/utils"
)

type Handler struct {
	services *service.Services

	metrics  *Metrics
	limiter  *rate.Limiter
	traceIDs *utils.TraceIDGenerator

	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	h := &Handler{
		services:       services,
		metrics:        NewMetrics(),
		traceIDs:       utils.NewTraceIDGenerator(),
		requestTimeout: cfg.RequestTimeout,
		logger:         logger,
	}

	if cfg.RateLimit > 0 {
		h.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), max(cfg.RateBurst, 1))
	}

	logger.Info().
		Dur("request_timeout", cfg.RequestTimeout).
		Float64("rate_limit", cfg.RateLimit).
		Msg("http handler created")

	return h
}
