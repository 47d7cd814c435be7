// Package state persists the client's local state — session token,
// user, preferences — in a small sqlite file so a restart restores the
// signed-in session.
package state

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
)

// ErrNoSession means nothing is persisted (fresh install or logged out).
var ErrNoSession = errors.New("no saved session")

// Saved is the persisted slice of client state.
type Saved struct {
	Token       string
	User        models.UserSummary
	Preferences models.Preferences
}

// Repository stores and restores the saved state.
type Repository interface {
	Save(ctx context.Context, s Saved) error
	Load(ctx context.Context) (*Saved, error)
	Clear(ctx context.Context) error
}
