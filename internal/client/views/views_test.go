package views

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
	"github.com/dmitrijs2005/taskboard/internal/client/mutation"
	"github.com/dmitrijs2005/taskboard/internal/client/query"
	"github.com/dmitrijs2005/taskboard/internal/client/session"
	"github.com/dmitrijs2005/taskboard/internal/logging"
)

// ---- fake API client ----

// fakeAPI implements api.Client with preset results and call counters.
type fakeAPI struct {
	registerResp *models.AuthResponse
	registerErr  error
	registerN    atomic.Int32

	loginResp *models.AuthResponse
	loginErr  error
	loginN    atomic.Int32

	projects     []models.Project
	projectsErr  error
	projectsN    atomic.Int32
	createdProj  *models.Project
	createErr    error
	createN      atomic.Int32
	lastCreated  string
	createGate chan struct{} // when set, CreateProject blocks until closed

	task       *models.Task
	taskErr    error
	taskN      atomic.Int32
	updateResp *models.Task
	updateErr  error
	deleteErr  error

	subtasks    []models.Subtask
	subtasksErr error
	activity    []models.ActivityEntry
	activityErr error

	comment    *models.Comment
	commentErr error

	settingsResp *models.Preferences
	settingsErr  error
}

func (f *fakeAPI) Register(ctx context.Context, r models.Registration) (*models.AuthResponse, error) {
	f.registerN.Add(1)
	return f.registerResp, f.registerErr
}

func (f *fakeAPI) Login(ctx context.Context, c models.Credentials) (*models.AuthResponse, error) {
	f.loginN.Add(1)
	return f.loginResp, f.loginErr
}

func (f *fakeAPI) ListProjects(ctx context.Context) ([]models.Project, error) {
	f.projectsN.Add(1)
	return f.projects, f.projectsErr
}

func (f *fakeAPI) CreateProject(ctx context.Context, title string) (*models.Project, error) {
	f.createN.Add(1)
	f.lastCreated = title
	if f.createGate != nil {
		<-f.createGate
	}
	return f.createdProj, f.createErr
}

func (f *fakeAPI) GetTask(ctx context.Context, id string) (*models.Task, error) {
	f.taskN.Add(1)
	return f.task, f.taskErr
}

func (f *fakeAPI) UpdateTask(ctx context.Context, t *models.Task) (*models.Task, error) {
	return f.updateResp, f.updateErr
}

func (f *fakeAPI) DeleteTask(ctx context.Context, id string) error {
	return f.deleteErr
}

func (f *fakeAPI) ListSubtasks(ctx context.Context, taskID string) ([]models.Subtask, error) {
	return f.subtasks, f.subtasksErr
}

func (f *fakeAPI) ListActivity(ctx context.Context, taskID string) ([]models.ActivityEntry, error) {
	return f.activity, f.activityErr
}

func (f *fakeAPI) AddComment(ctx context.Context, taskID string, body string) (*models.Comment, error) {
	return f.comment, f.commentErr
}

func (f *fakeAPI) UpdateSettings(ctx context.Context, p models.Preferences) (*models.Preferences, error) {
	return f.settingsResp, f.settingsErr
}

// ---- fake navigator ----

type fakeNav struct {
	paths []string
}

func (n *fakeNav) Navigate(path string) { n.paths = append(n.paths, path) }

// ---- wiring ----

// newTestDeps wires session, cache and executor the way the app does:
// an auth rejection clears the session, and clearing the session purges
// the cache.
func newTestDeps(t *testing.T, api *fakeAPI) (Deps, *fakeNav) {
	t.Helper()

	log := logging.NewText(io.Discard, slog.LevelError)
	sess := session.New()
	cache := query.New(sess.ClearAuth)
	sess.OnClear(cache.Purge)
	exec := mutation.New(cache, log, sess.ClearAuth)
	nav := &fakeNav{}

	return Deps{
		Session: sess,
		Cache:   cache,
		Exec:    exec,
		API:     api,
		Nav:     nav,
		Log:     log,
	}, nav
}

// signIn puts a token into the session so gated loads pass.
func signIn(d Deps) {
	d.Session.SetAuth("tok", models.UserSummary{ID: "u1", Name: "Ana", Email: "a@b.com"})
}

func timeout() time.Duration { return time.Second }
func tick() time.Duration    { return time.Millisecond }
