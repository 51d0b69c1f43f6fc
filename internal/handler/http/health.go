package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-task-keeper/internal/app"
	"github.com/MKhiriev/go-task-keeper/internal/utils"
	"github.com/MKhiriev/go-task-keeper/models"
)

// health reports liveness and the process uptime in seconds.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, models.HealthResponse{
		Status: app.MsgHealthOK,
		Uptime: time.Since(h.startedAt).Seconds(),
	}, http.StatusOK)
}

func (h *Handler) routeNotFound(w http.ResponseWriter, r *http.Request) {
	if _, err := utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgRouteNotFound}, http.StatusNotFound); err != nil {
		h.logger.Err(err).Msg("error writing response")
	}
}
