package models

import "github.com/google/uuid"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

// AuthResponse is returned by registration and login.
type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// TaskResponse wraps a single task. Message is set on mutating requests only.
type TaskResponse struct {
	Message string `json:"message,omitempty"`
	Data    Task   `json:"data"`
}

// DeletedTask identifies a removed task.
type DeletedTask struct {
	ID uuid.UUID `json:"id"`
}

// DeleteTaskResponse is returned after a task was removed.
type DeleteTaskResponse struct {
	Message string      `json:"message"`
	Data    DeletedTask `json:"data"`
}

// HealthResponse is the liveness probe body. Uptime is in seconds.
type HealthResponse struct {
	Status string  `json:"status"`
	Uptime float64 `json:"uptime"`
}
