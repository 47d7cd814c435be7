package views

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
	"github.com/dmitrijs2005/taskboard/internal/client/query"
)

func TestClearAuthThenLoadIssuesNoRequest(t *testing.T) {
	fake := &fakeAPI{projects: []models.Project{{ID: "p1"}}}
	deps, _ := newTestDeps(t, fake)
	signIn(deps)

	v := NewProjectListView(deps)
	v.Mount()
	_, err := v.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, int32(1), fake.projectsN.Load())

	deps.Session.ClearAuth()

	_, err = v.Load(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Equal(t, int32(1), fake.projectsN.Load(), "logout gates every later fetch")
	assert.Equal(t, 0, deps.Cache.Len(), "logout purges the cache")
}

func TestStateDerivation(t *testing.T) {
	fake := &fakeAPI{projects: []models.Project{{ID: "p1"}}}
	deps, _ := newTestDeps(t, fake)

	v := NewProjectListView(deps)
	v.Mount()

	assert.Equal(t, StateUnauthenticated, v.State(KeyProjects))

	signIn(deps)
	assert.Equal(t, StateIdle, v.State(KeyProjects), "no entry yet")

	_, err := v.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, v.State(KeyProjects))

	deps.Cache.Invalidate(KeyProjects)
	assert.Equal(t, StateIdle, v.State(KeyProjects))

	// Forced logout wins over any cache state.
	deps.Session.ClearAuth()
	assert.Equal(t, StateUnauthenticated, v.State(KeyProjects))
}

func TestStateLoading(t *testing.T) {
	deps, _ := newTestDeps(t, &fakeAPI{})
	signIn(deps)

	v := NewProjectListView(deps)
	v.Mount()

	release := make(chan struct{})
	go func() {
		_, _ = v.Controller.Load(context.Background(), KeyProjects, func(ctx context.Context) (any, error) {
			<-release
			return nil, nil
		}, query.Options{})
	}()

	assert.Eventually(t, func() bool {
		return v.State(KeyProjects) == StateLoading
	}, timeout(), tick())
	close(release)
}
