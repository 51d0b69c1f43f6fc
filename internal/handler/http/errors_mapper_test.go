package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-task-keeper/internal/app"
	"github.com/MKhiriev/go-task-keeper/internal/service"
	"github.com/MKhiriev/go-task-keeper/internal/store"
	"github.com/MKhiriev/go-task-keeper/internal/utils"
	"github.com/MKhiriev/go-task-keeper/internal/validators"
	"github.com/MKhiriev/go-task-keeper/models"
	"github.com/stretchr/testify/assert"
)

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "single validation error",
			err:        &service.ValidationError{Err: validators.ErrEmptyTitle},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "title is required",
		},
		{
			name:       "joined validation errors",
			err:        &service.ValidationError{Err: errors.Join(validators.ErrEmptyTitle, validators.ErrInvalidDueDate)},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "title is required; dueDate must be a valid date",
		},
		{
			name:       "wrapped validation error",
			err:        fmt.Errorf("create: %w", &service.ValidationError{Err: validators.ErrInvalidTaskID}),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid task id",
		},
		{name: "token not found", err: service.ErrTokenNotFound, wantStatus: http.StatusUnauthorized, wantMsg: "token not found"},
		{name: "token expired", err: service.ErrTokenExpired, wantStatus: http.StatusUnauthorized, wantMsg: "token expired"},
		{name: "invalid token", err: service.ErrTokenInvalid, wantStatus: http.StatusUnauthorized, wantMsg: "invalid token"},
		{name: "user not found", err: service.ErrUserNotFound, wantStatus: http.StatusUnauthorized, wantMsg: "user not found"},
		{name: "invalid credentials", err: service.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantMsg: "invalid credentials"},
		{
			name:       "duplicate user",
			err:        fmt.Errorf("register: %w", store.ErrUserAlreadyExists),
			wantStatus: http.StatusConflict,
			wantMsg:    "username or email already registered",
		},
		{name: "task not found", err: store.ErrTaskNotFound, wantStatus: http.StatusNotFound, wantMsg: "task not found"},
		{
			name:       "invalid json",
			err:        fmt.Errorf("%w: unexpected EOF", utils.ErrInvalidJSON),
			wantStatus: http.StatusBadRequest,
			wantMsg:    app.MsgInvalidJSON,
		},
		{
			name:       "store internals hidden",
			err:        errors.Join(store.ErrExecutingQuery, errors.New("relation tasks does not exist")),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    app.MsgInternalServerError,
		},
		{name: "panic", err: errPanicRecovered, wantStatus: http.StatusInternalServerError, wantMsg: app.MsgInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := errorResponse(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
			assert.Equal(t, tt.wantStatus, statusFromError(tt.err))
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), store.ErrTaskNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "task not found", decodeBody[models.ErrorResponse](t, rec).Message)
}
