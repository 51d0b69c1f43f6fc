package handler

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-task-keeper/internal/config"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewHandlers_HTTP verifies that a configured HTTPAddress yields an
// initialised HTTP handler.
func TestNewHandlers_HTTP(t *testing.T) {
	cfg := config.Server{
		HTTPAddress:    ":8080",
		RequestTimeout: time.Second,
	}

	h, err := NewHandlers(&service.Services{}, cfg, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NotNil(t, h.HTTP, "expected HTTP handler to be initialised")
	assert.NotNil(t, h.HTTP.Init())
}

// TestNewHandlers_NoAddress verifies that an empty configuration is rejected.
func TestNewHandlers_NoAddress(t *testing.T) {
	h, err := NewHandlers(&service.Services{}, config.Server{}, logger.Nop())

	require.ErrorIs(t, err, errNoHandlersAreCreated)
	assert.Nil(t, h)
}
