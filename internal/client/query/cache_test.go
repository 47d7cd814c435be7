package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/taskboard/internal/client/api"
)

func fetchValue(v any) FetchFunc {
	return func(ctx context.Context) (any, error) { return v, nil }
}

func fetchErr(err error) FetchFunc {
	return func(ctx context.Context) (any, error) { return nil, err }
}

func TestEnsureFetchesOnMiss(t *testing.T) {
	c := New(nil)
	key := NewKey("projects")

	e, err := c.Ensure(context.Background(), key, fetchValue("data"), Options{})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, e.Status)
	assert.Equal(t, "data", e.Data)
	assert.False(t, e.FetchedAt.IsZero())
}

func TestEnsureReturnsCachedWithoutFetching(t *testing.T) {
	c := New(nil)
	key := NewKey("projects")

	_, err := c.Ensure(context.Background(), key, fetchValue("first"), Options{})
	require.NoError(t, err)

	var called bool
	e, err := c.Ensure(context.Background(), key, func(ctx context.Context) (any, error) {
		called = true
		return "second", nil
	}, Options{})
	require.NoError(t, err)
	assert.False(t, called, "fresh Success entry must be served from cache")
	assert.Equal(t, "first", e.Data)
}

func TestEnsureSingleFlight(t *testing.T) {
	c := New(nil)
	key := NewKey("projects")

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "data", nil
	}

	const waiters = 5
	var wg sync.WaitGroup
	results := make([]Entry, waiters)
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e, err := c.Ensure(context.Background(), key, fetch, Options{})
			assert.NoError(t, err)
			results[i] = e
		}(i)
	}

	// Let all goroutines reach the flight before releasing it.
	assert.Eventually(t, func() bool {
		e, ok := c.Get(key)
		return ok && e.Status == StatusLoading
	}, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "concurrent Ensure calls must share one fetch")
	for _, e := range results {
		assert.Equal(t, "data", e.Data)
	}
}

func TestEnsureErrorKeepsStaleData(t *testing.T) {
	c := New(nil)
	key := NewKey("projects")

	_, err := c.Ensure(context.Background(), key, fetchValue("good"), Options{})
	require.NoError(t, err)

	c.Invalidate(key)

	boom := errors.New("boom")
	e, err := c.Ensure(context.Background(), key, fetchErr(boom), Options{})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, StatusError, e.Status)
	assert.True(t, e.HasData, "previous data must survive a failed refetch")
	assert.Equal(t, "good", e.Data)
}

func TestInvalidateForcesRefetch(t *testing.T) {
	c := New(nil)
	key := NewKey("project", "42")

	_, err := c.Ensure(context.Background(), key, fetchValue("v1"), Options{})
	require.NoError(t, err)

	c.Invalidate(NewKey("project"))

	e, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, StatusIdle, e.Status)
	assert.Equal(t, "v1", e.Data, "invalidation keeps data as stale")

	e, err = c.Ensure(context.Background(), key, fetchValue("v2"), Options{})
	require.NoError(t, err)
	assert.Equal(t, "v2", e.Data, "next Ensure after invalidation must fetch")
}

func TestInvalidatePrefixMatchesAllDescendants(t *testing.T) {
	c := New(nil)
	task := NewKey("task", "7")
	subtasks := NewKey("task", "7", "subtasks")
	other := NewKey("task", "8")

	for _, k := range []Key{task, subtasks, other} {
		_, err := c.Ensure(context.Background(), k, fetchValue("x"), Options{})
		require.NoError(t, err)
	}

	c.Invalidate(NewKey("task", "7"))

	for _, k := range []Key{task, subtasks} {
		e, ok := c.Get(k)
		require.True(t, ok)
		assert.Equal(t, StatusIdle, e.Status, "key %v", k)
	}
	e, ok := c.Get(other)
	require.True(t, ok)
	assert.Equal(t, StatusSuccess, e.Status)
}

func TestInvalidateMidFlightWins(t *testing.T) {
	c := New(nil)
	key := NewKey("projects")

	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		close(started)
		<-release
		return "late", nil
	}

	done := make(chan Entry, 1)
	go func() {
		e, _ := c.Ensure(context.Background(), key, fetch, Options{})
		done <- e
	}()

	<-started
	c.Invalidate(key)
	close(release)
	e := <-done

	assert.Equal(t, StatusIdle, e.Status, "result completed after invalidation must stay stale")
	assert.Equal(t, "late", e.Data)

	// The next Ensure performs a real fetch.
	var called bool
	e2, err := c.Ensure(context.Background(), key, func(ctx context.Context) (any, error) {
		called = true
		return "fresh", nil
	}, Options{})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, StatusSuccess, e2.Status)
}

func TestPurgeDropsEverything(t *testing.T) {
	c := New(nil)
	_, err := c.Ensure(context.Background(), NewKey("projects"), fetchValue("x"), Options{})
	require.NoError(t, err)

	c.Purge()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get(NewKey("projects"))
	assert.False(t, ok)
}

func TestPurgeMidFlightDropsResult(t *testing.T) {
	c := New(nil)
	key := NewKey("projects")

	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_, _ = c.Ensure(context.Background(), key, func(ctx context.Context) (any, error) {
			close(started)
			<-release
			return "secret", nil
		}, Options{})
	}()

	<-started
	c.Purge()
	close(release)

	assert.Eventually(t, func() bool {
		_, ok := c.Get(key)
		return !ok
	}, time.Second, time.Millisecond, "purged entry must not be resurrected by an in-flight result")
}

func TestEnsureAuthErrorTriggersHook(t *testing.T) {
	var cleared atomic.Int32
	c := New(func() { cleared.Add(1) })
	key := NewKey("task", "1")

	_, err := c.Ensure(context.Background(), key, fetchErr(api.ErrUnauthorized), Options{})
	require.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Equal(t, int32(1), cleared.Load())
}

func TestEnsureStaleAfter(t *testing.T) {
	c := New(nil)
	key := NewKey("projects")

	_, err := c.Ensure(context.Background(), key, fetchValue("v1"), Options{})
	require.NoError(t, err)

	// Entry is older than the caller's tolerance: refetch.
	c.mu.Lock()
	c.entries[key.String()].fetchedAt = time.Now().Add(-time.Minute)
	c.mu.Unlock()

	var called bool
	e, err := c.Ensure(context.Background(), key, func(ctx context.Context) (any, error) {
		called = true
		return "v2", nil
	}, Options{StaleAfter: time.Second})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "v2", e.Data)

	// Zero StaleAfter: fresh until invalidated, regardless of age.
	called = false
	_, err = c.Ensure(context.Background(), key, func(ctx context.Context) (any, error) {
		called = true
		return "v3", nil
	}, Options{})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestDataHelper(t *testing.T) {
	e := Entry{Data: []string{"a"}, HasData: true}
	v, ok := Data[[]string](e)
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, v)

	_, ok = Data[int](e)
	assert.False(t, ok)
}
