package cli

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/taskboard/internal/client/api"
	"github.com/dmitrijs2005/taskboard/internal/client/config"
	"github.com/dmitrijs2005/taskboard/internal/client/mutation"
	"github.com/dmitrijs2005/taskboard/internal/client/query"
	"github.com/dmitrijs2005/taskboard/internal/client/repositories/state"
	"github.com/dmitrijs2005/taskboard/internal/client/session"
	"github.com/dmitrijs2005/taskboard/internal/client/views"
	"github.com/dmitrijs2005/taskboard/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the client together: session store, query cache, mutation
// executor, resource client, local state repository, and the terminal
// views on top of them.
type App struct {
	config  *config.Config
	log     logging.Logger
	session *session.Store
	cache   *query.Cache
	exec    *mutation.Executor
	api     api.Client
	state   state.Repository
	deps    views.Deps
	reader  *bufio.Reader

	// path last navigated to; the REPL has no real router.
	path string
}

// NewApp builds the app from config and restores a persisted session,
// if any.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	log := logging.NewText(os.Stderr, slog.LevelInfo)

	db, err := state.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}
	stateRepo := state.NewSQLiteRepository(db)

	sess := session.New()
	cache := query.New(sess.ClearAuth)
	apiClient := api.NewRESTClient(c.APIBaseURL, sess, c.RequestTimeout)
	exec := mutation.New(cache, log, sess.ClearAuth)

	a := &App{
		config:  c,
		log:     log,
		session: sess,
		cache:   cache,
		exec:    exec,
		api:     apiClient,
		state:   stateRepo,
		reader:  bufio.NewReader(os.Stdin),
	}

	// Forced or explicit logout must leave nothing behind: purge the
	// cache and wipe the persisted session.
	sess.OnClear(cache.Purge)
	sess.OnClear(func() {
		if err := stateRepo.Clear(context.Background()); err != nil {
			log.Error(context.Background(), "error clearing saved session", "error", err)
		}
	})

	a.deps = views.Deps{
		Session: sess,
		Cache:   cache,
		Exec:    exec,
		API:     apiClient,
		Nav:     views.NavigatorFunc(a.navigate),
		Log:     log,
	}

	a.restoreSession(ctx)

	return a, nil
}

// navigate is the opaque navigation capability handed to views. The
// REPL only records and reports the target.
func (a *App) navigate(path string) {
	a.path = path
	a.log.Info(context.Background(), "navigating", "path", path)
}

// restoreSession loads a previously saved session from the local state
// database, so a restart keeps the user signed in.
func (a *App) restoreSession(ctx context.Context) {
	saved, err := a.state.Load(ctx)
	if err != nil {
		if !errors.Is(err, state.ErrNoSession) {
			a.log.Warn(ctx, "error restoring session", "error", err)
		}
		return
	}
	a.session.SetAuth(saved.Token, saved.User)
	a.session.UpdatePreferences(saved.Preferences)
	a.log.Info(ctx, "session restored", "user", saved.User.Email)
}

// persistSession saves the current session for the next run.
func (a *App) persistSession(ctx context.Context) {
	snap := a.session.Get()
	if !snap.Authenticated() || snap.User == nil {
		return
	}
	err := a.state.Save(ctx, state.Saved{
		Token:       snap.Token,
		User:        *snap.User,
		Preferences: snap.Preferences,
	})
	if err != nil {
		a.log.Warn(ctx, "error saving session", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Get().Authenticated()
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
