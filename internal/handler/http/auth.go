package http

import (
	"net/http"

	"github.com/MKhiriev/go-task-keeper/internal/app"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/utils"
	"github.com/MKhiriev/go-task-keeper/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var in models.RegisterInput
	if err := utils.DecodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.services.AuthService.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.AuthResponse{Message: app.MsgRegistered, Token: res.Token, User: res.User}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var in models.LoginInput
	if err := utils.DecodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.services.AuthService.Login(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Str("user_id", res.User.ID.String()).Msg("user successfully logged in")
	h.writeJSON(w, r, models.AuthResponse{Message: app.MsgLoggedIn, Token: res.Token, User: res.User}, http.StatusOK)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}
