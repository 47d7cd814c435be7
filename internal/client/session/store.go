// Package session holds the process-wide authentication state of the
// taskboard client: the bearer token, the authenticated user, and the
// user's UI preferences. It is the single source of truth for "is
// someone logged in"; every other component reads it and only the
// mutators defined here write it.
package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
)

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	Token       string
	User        *models.UserSummary
	Preferences models.Preferences
	ExpiresAt   time.Time
}

// Authenticated reports whether the snapshot carries a token.
func (s Snapshot) Authenticated() bool { return s.Token != "" }

// Store is the session holder. All methods are safe for concurrent use.
//
// Invariant: User is present iff Token is present; SetAuth and
// ClearAuth maintain it atomically.
type Store struct {
	mu          sync.Mutex
	token       string
	user        *models.UserSummary
	preferences models.Preferences
	expiresAt   time.Time

	onClear []func()
}

// New returns an empty (unauthenticated) store.
func New() *Store {
	return &Store{}
}

// OnClear registers fn to run after every ClearAuth. The app wires the
// query cache purge here so a forced logout never leaks one user's
// cached data into the next session.
func (s *Store) OnClear(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClear = append(s.onClear, fn)
}

// SetAuth replaces the session atomically. If the token is a JWT, its
// expiry claim is recorded; opaque tokens simply get no expiry.
func (s *Store) SetAuth(token string, user models.UserSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = &user
	s.expiresAt = tokenExpiry(token)
}

// ClearAuth clears token and user and runs the registered OnClear
// hooks. Preferences are reset too: they are user-scoped.
func (s *Store) ClearAuth() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.preferences = models.Preferences{}
	s.expiresAt = time.Time{}
	hooks := s.onClear
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

// UpdatePreferences merges the non-empty fields of p into the stored
// preferences. It does not touch token, user, or the cache.
func (s *Store) UpdatePreferences(p models.Preferences) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preferences = s.preferences.Merge(p)
}

// Get returns a copy of the current state. Side-effect-free.
func (s *Store) Get() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	var user *models.UserSummary
	if s.user != nil {
		u := *s.user
		user = &u
	}
	return Snapshot{
		Token:       s.token,
		User:        user,
		Preferences: s.preferences,
		ExpiresAt:   s.expiresAt,
	}
}

// Token implements api.TokenSource.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

// tokenExpiry extracts the exp claim without verifying the signature.
// Verification is the server's job; the client only uses the expiry to
// report session age.
func tokenExpiry(token string) time.Time {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
