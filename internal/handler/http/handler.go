package http

import (
	"time"

	"github.com/MKhiriev/go-task-keeper/internal/config"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

type Handler struct {
	services *service.Services
	metrics  *metrics

	// requestTimeout bounds every request when positive.
	requestTimeout time.Duration
	startedAt      time.Time

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		metrics:        newMetrics(prometheus.NewRegistry()),
		requestTimeout: cfg.RequestTimeout,
		startedAt:      time.Now(),
		logger:         logger,
	}
}
