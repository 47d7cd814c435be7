package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
)

// RESTClient talks JSON over HTTP to the taskboard backend. It attaches
// the current session token as a Bearer header when one is present and
// maps every failure into the package error taxonomy, so callers only
// ever see ErrNetwork/ErrUnauthorized/ErrServer/ErrDecode or a
// *ValidationError.
type RESTClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// NewRESTClient returns a client bound to baseURL. The timeout applies
// per request; zero means no client-side timeout.
func NewRESTClient(baseURL string, tokens TokenSource, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// errorBody is the shape the backend uses for non-2xx responses.
// "errors" carries field messages on validation failures.
type errorBody struct {
	Error  string            `json:"error"`
	Errors map[string]string `json:"errors"`
}

// do performs one request. body (if non-nil) is JSON-encoded; out (if
// non-nil) receives the decoded 2xx response body.
func (c *RESTClient) do(ctx context.Context, method, path string, body any, out any) error {

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.tokens.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, ErrNetwork)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s %s: %w", method, path, ErrDecode)
		}
		return nil
	}

	return c.mapStatus(resp, method, path)
}

// mapStatus converts a non-2xx response into the error taxonomy.
func (c *RESTClient) mapStatus(resp *http.Response, method, path string) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)

	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil && len(eb.Errors) > 0 {
			return &ValidationError{Fields: eb.Errors}
		}
		if eb.Error != "" {
			return &ValidationError{Fields: map[string]string{"": eb.Error}}
		}
		return &ValidationError{}

	default:
		return fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, ErrServer)
	}
}

func (c *RESTClient) Register(ctx context.Context, r models.Registration) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *RESTClient) Login(ctx context.Context, cr models.Credentials) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", cr, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *RESTClient) ListProjects(ctx context.Context) ([]models.Project, error) {
	var resp []models.Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *RESTClient) CreateProject(ctx context.Context, title string) (*models.Project, error) {
	var resp models.Project
	body := map[string]string{"title": title}
	if err := c.do(ctx, http.MethodPost, "/projects", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *RESTClient) GetTask(ctx context.Context, id string) (*models.Task, error) {
	var resp models.Task
	if err := c.do(ctx, http.MethodGet, "/tasks/"+id, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *RESTClient) UpdateTask(ctx context.Context, t *models.Task) (*models.Task, error) {
	var resp models.Task
	if err := c.do(ctx, http.MethodPut, "/tasks/"+t.ID, t, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *RESTClient) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+id, nil, nil)
}

func (c *RESTClient) ListSubtasks(ctx context.Context, taskID string) ([]models.Subtask, error) {
	var resp []models.Subtask
	if err := c.do(ctx, http.MethodGet, "/tasks/"+taskID+"/subtasks", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *RESTClient) ListActivity(ctx context.Context, taskID string) ([]models.ActivityEntry, error) {
	var resp []models.ActivityEntry
	if err := c.do(ctx, http.MethodGet, "/tasks/"+taskID+"/activity", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *RESTClient) AddComment(ctx context.Context, taskID string, body string) (*models.Comment, error) {
	var resp models.Comment
	payload := map[string]string{"body": body}
	if err := c.do(ctx, http.MethodPost, "/tasks/"+taskID+"/comments", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *RESTClient) UpdateSettings(ctx context.Context, p models.Preferences) (*models.Preferences, error) {
	var resp models.Preferences
	if err := c.do(ctx, http.MethodPut, "/user_settings", p, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
