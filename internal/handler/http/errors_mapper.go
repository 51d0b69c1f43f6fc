package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-task-keeper/internal/app"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/service"
	"github.com/MKhiriev/go-task-keeper/internal/store"
	"github.com/MKhiriev/go-task-keeper/internal/utils"
	"github.com/MKhiriev/go-task-keeper/models"
)

var errorStatusMap = map[error]int{
	service.ErrValidation:         http.StatusBadRequest,
	service.ErrTokenNotFound:      http.StatusUnauthorized,
	service.ErrUserNotFound:       http.StatusUnauthorized,
	service.ErrTokenExpired:       http.StatusUnauthorized,
	service.ErrTokenInvalid:       http.StatusUnauthorized,
	service.ErrInvalidCredentials: http.StatusUnauthorized,

	store.ErrUserAlreadyExists: http.StatusConflict,
	store.ErrTaskNotFound:      http.StatusNotFound,

	utils.ErrInvalidJSON: http.StatusBadRequest,
}

// errorMessages overrides the client message of a matched error.
var errorMessages = map[error]string{
	store.ErrUserAlreadyExists: "username or email already registered",
	utils.ErrInvalidJSON:       app.MsgInvalidJSON,
}

// errorResponse resolves the status and the client message of err. Errors
// not listed in errorStatusMap are internal and their details never reach
// the client.
func errorResponse(err error) (int, string) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Error()
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			if msg, ok := errorMessages[target]; ok {
				return status, msg
			}
			return status, target.Error()
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

func statusFromError(err error) int {
	status, _ := errorResponse(err)
	return status
}

// writeError answers with the JSON error body of err. Server errors are
// logged with their details; client errors at debug level.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := errorResponse(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	if _, wErr := utils.WriteJSON(w, models.ErrorResponse{Message: msg}, status); wErr != nil {
		log.Err(wErr).Msg("error writing error response")
	}
}
