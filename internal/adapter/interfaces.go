// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a Go client for the go-task-keeper REST API.
//
// The primary abstraction is [ServerAdapter], which hides request building,
// bearer token handling and response decoding. Error values defined in
// errors.go are mapped from HTTP status codes by mapHTTPError so that callers
// can use [errors.Is] (e.g. [ErrConflict] for 409, [ErrNotFound] for 404).
package adapter

import (
	"context"
	"net/url"

	"github.com/MKhiriev/go-task-keeper/models"
	"github.com/google/uuid"
)

// ServerAdapter defines communication with the go-task-keeper server.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to all subsequent task
	// requests. Register and Login call it on success.
	SetToken(token string)

	// Token returns the stored bearer token, or "" if none has been set yet.
	Token() string

	// Register creates an account via POST /auth/register and stores the
	// returned token.
	Register(ctx context.Context, in models.RegisterInput) (models.AuthResult, error)

	// Login authenticates via POST /auth/login and stores the returned token.
	Login(ctx context.Context, in models.LoginInput) (models.AuthResult, error)

	// ListTasks fetches one page of the caller's tasks. params accepts the
	// done, tag, page, limit and sort query parameters.
	ListTasks(ctx context.Context, params url.Values) (models.TaskList, error)

	CreateTask(ctx context.Context, req TaskRequest) (models.Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (models.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, req TaskRequest) (models.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) (uuid.UUID, error)

	// Health reports the server status and uptime.
	Health(ctx context.Context) (models.HealthResponse, error)
}
