package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-task-keeper/models"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const (
	defaultBaseURL = "http://localhost:8080"
	defaultTimeout = 15 * time.Second
)

type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// TaskRequest is the body of task create and update requests. Nil fields
// are omitted, so an update only changes what is set. ClearDueDate sends an
// explicit null dueDate and wins over DueDate.
type TaskRequest struct {
	Title        *string
	Done         *bool
	DueDate      *time.Time
	ClearDueDate bool
	Tags         []string
}

func (r TaskRequest) MarshalJSON() ([]byte, error) {
	body := make(map[string]any, 4)
	if r.Title != nil {
		body["title"] = *r.Title
	}
	if r.Done != nil {
		body["done"] = *r.Done
	}
	switch {
	case r.ClearDueDate:
		body["dueDate"] = nil
	case r.DueDate != nil:
		body["dueDate"] = r.DueDate.UTC().Format(time.RFC3339Nano)
	}
	if r.Tags != nil {
		body["tags"] = r.Tags
	}
	return json.Marshal(body)
}

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. The base URL may omit the scheme, "http" is assumed.
func NewHTTPServerAdapter(cfg HTTPClientConfig) (ServerAdapter, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	cli := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return &httpServerAdapter{client: cli}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, in models.RegisterInput) (models.AuthResult, error) {
	return h.authenticate(ctx, "/auth/register", in)
}

func (h *httpServerAdapter) Login(ctx context.Context, in models.LoginInput) (models.AuthResult, error) {
	return h.authenticate(ctx, "/auth/login", in)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path string, body any) (models.AuthResult, error) {
	var out models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post(path)
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResult{}, err
	}

	h.SetToken(out.Token)
	return models.AuthResult{Token: out.Token, User: out.User}, nil
}

func (h *httpServerAdapter) ListTasks(ctx context.Context, params url.Values) (models.TaskList, error) {
	var out models.TaskList

	resp, err := h.authedRequest(ctx).
		SetQueryParamsFromValues(params).
		SetResult(&out).
		Get("/tasks")
	if err != nil {
		return models.TaskList{}, fmt.Errorf("list tasks request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TaskList{}, err
	}

	return out, nil
}

func (h *httpServerAdapter) CreateTask(ctx context.Context, req TaskRequest) (models.Task, error) {
	var out models.TaskResponse

	resp, err := h.authedRequest(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/tasks")
	if err != nil {
		return models.Task{}, fmt.Errorf("create task request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Task{}, err
	}

	return out.Data, nil
}

func (h *httpServerAdapter) GetTask(ctx context.Context, id uuid.UUID) (models.Task, error) {
	var out models.TaskResponse

	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id.String()).
		SetResult(&out).
		Get("/tasks/{id}")
	if err != nil {
		return models.Task{}, fmt.Errorf("get task request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Task{}, err
	}

	return out.Data, nil
}

func (h *httpServerAdapter) UpdateTask(ctx context.Context, id uuid.UUID, req TaskRequest) (models.Task, error) {
	var out models.TaskResponse

	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id.String()).
		SetBody(req).
		SetResult(&out).
		Put("/tasks/{id}")
	if err != nil {
		return models.Task{}, fmt.Errorf("update task request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Task{}, err
	}

	return out.Data, nil
}

func (h *httpServerAdapter) DeleteTask(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var out models.DeleteTaskResponse

	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id.String()).
		SetResult(&out).
		Delete("/tasks/{id}")
	if err != nil {
		return uuid.Nil, fmt.Errorf("delete task request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return uuid.Nil, err
	}

	return out.Data.ID, nil
}

func (h *httpServerAdapter) Health(ctx context.Context) (models.HealthResponse, error) {
	var out models.HealthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/health")
	if err != nil {
		return models.HealthResponse{}, fmt.Errorf("health request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.HealthResponse{}, err
	}

	return out, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
