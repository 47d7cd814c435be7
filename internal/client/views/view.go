// Package views implements the per-screen controllers of the taskboard
// client. Every screen composes the same three collaborators — session
// store, query cache, mutation executor — through the shared Controller,
// which enforces the two rules no screen may skip: never fetch without a
// session token, and never act on a result that arrives after the
// screen unmounted.
package views

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/taskboard/internal/client/api"
	"github.com/dmitrijs2005/taskboard/internal/client/mutation"
	"github.com/dmitrijs2005/taskboard/internal/client/query"
	"github.com/dmitrijs2005/taskboard/internal/client/session"
	"github.com/dmitrijs2005/taskboard/internal/logging"
)

var (
	// ErrUnauthenticated means the screen needed a session token and
	// there was none. No request was sent.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrUnmounted means the result arrived after the screen unmounted
	// and was discarded.
	ErrUnmounted = errors.New("view unmounted")

	// ErrSubmitting means a submission was already in flight and the
	// duplicate was ignored.
	ErrSubmitting = errors.New("submission in flight")
)

// State is what a screen renders for a given query key.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateIdle            State = "idle"
	StateLoading         State = "loading"
	StateSuccess         State = "success"
	StateError           State = "error"
)

// Navigator is the opaque navigation capability the host provides.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// Deps are the collaborators every screen needs, constructed once at
// startup and passed in explicitly.
type Deps struct {
	Session *session.Store
	Cache   *query.Cache
	Exec    *mutation.Executor
	API     api.Client
	Nav     Navigator
	Log     logging.Logger
}

// Controller carries Deps plus the mounted flag. Concrete screens embed
// it. A zero Controller is unmounted.
type Controller struct {
	Deps
	mounted bool
}

// Mount marks the screen live. Loads only apply their results while
// mounted.
func (c *Controller) Mount() { c.mounted = true }

// Unmount marks the screen gone; any in-flight load result is dropped.
func (c *Controller) Unmount() { c.mounted = false }

// Mounted reports whether the screen is live.
func (c *Controller) Mounted() bool { return c.mounted }

// State derives the render state for key from session and cache.
func (c *Controller) State(key query.Key) State {
	if !c.Session.Get().Authenticated() {
		return StateUnauthenticated
	}
	e, ok := c.Cache.Get(key)
	if !ok {
		return StateIdle
	}
	switch e.Status {
	case query.StatusLoading:
		return StateLoading
	case query.StatusSuccess:
		return StateSuccess
	case query.StatusError:
		return StateError
	default:
		return StateIdle
	}
}

// Load is the gated Ensure. Without a token it returns
// ErrUnauthenticated and fetch is never called. A result arriving after
// Unmount is returned as ErrUnmounted so the caller does not render it.
func (c *Controller) Load(ctx context.Context, key query.Key, fetch query.FetchFunc, opts query.Options) (query.Entry, error) {
	if _, ok := c.Session.Token(); !ok {
		return query.Entry{}, ErrUnauthenticated
	}
	e, err := c.Cache.Ensure(ctx, key, fetch, opts)
	if !c.mounted {
		return query.Entry{}, ErrUnmounted
	}
	return e, err
}
