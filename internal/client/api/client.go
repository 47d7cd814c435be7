package api

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
)

// TokenSource supplies the current session token, if any. The session
// store implements it; the client never stores a token itself.
type TokenSource interface {
	Token() (string, bool)
}

// Client defines the REST operations the taskboard backend exposes.
type Client interface {
	Register(ctx context.Context, r models.Registration) (*models.AuthResponse, error)
	Login(ctx context.Context, c models.Credentials) (*models.AuthResponse, error)

	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, title string) (*models.Project, error)

	GetTask(ctx context.Context, id string) (*models.Task, error)
	UpdateTask(ctx context.Context, t *models.Task) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ListSubtasks(ctx context.Context, taskID string) ([]models.Subtask, error)
	ListActivity(ctx context.Context, taskID string) ([]models.ActivityEntry, error)
	AddComment(ctx context.Context, taskID string, body string) (*models.Comment, error)

	UpdateSettings(ctx context.Context, p models.Preferences) (*models.Preferences, error)
}
