// Package models defines client-side data models used by the taskboard client.
package models

import "time"

// UserSummary is the minimal user representation returned by the auth
// endpoints and kept in the session.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Preferences are user-scoped UI preferences.
type Preferences struct {
	DefaultView string `json:"default_view"`
	Theme       string `json:"theme"`
}

// Merge overlays non-empty fields of p2 onto p and returns the result.
func (p Preferences) Merge(p2 Preferences) Preferences {
	if p2.DefaultView != "" {
		p.DefaultView = p2.DefaultView
	}
	if p2.Theme != "" {
		p.Theme = p2.Theme
	}
	return p
}

// Credentials is the payload for POST /auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the payload for POST /auth/register.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the body returned by both auth endpoints.
type AuthResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

// Project is a container for tasks.
type Project struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskStatus classifies a task's workflow state.
type TaskStatus string

const (
	TaskStatusOpen TaskStatus = "open"
	TaskStatusDone TaskStatus = "done"
)

// Task is a single work item belonging to a project.
type Task struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Subtask is a checklist item under a task.
type Subtask struct {
	ID     string `json:"id"`
	TaskID string `json:"task_id"`
	Title  string `json:"title"`
	Done   bool   `json:"done"`
}

// Comment is a user comment on a task.
type Comment struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityEntry is one row of a task's activity feed.
type ActivityEntry struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}
