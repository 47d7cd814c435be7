package query

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/taskboard/internal/client/api"
)

// Status is the lifecycle state of a cache entry.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Entry is a read-only snapshot of one cache slot. Data may be present
// even when Status is Idle (stale after invalidation) or Error
// (stale-while-error): views keep showing the last known good value.
type Entry struct {
	Key       Key
	Status    Status
	Data      any
	HasData   bool
	Err       error
	FetchedAt time.Time
}

// Data extracts the entry's payload as T. The second result is false
// when no data is present or it has a different type.
func Data[T any](e Entry) (T, bool) {
	v, ok := e.Data.(T)
	return v, ok
}

// FetchFunc loads the resource behind a key.
type FetchFunc func(ctx context.Context) (any, error)

// Options tune a single Ensure call.
type Options struct {
	// StaleAfter marks a Success entry stale once it is older than this.
	// Zero means fresh until explicitly invalidated.
	StaleAfter time.Duration
}

// entry is the mutable slot behind Entry. gen increments on every
// invalidation so a fetch that was in flight when the invalidation
// landed cannot record its result as fresh.
type entry struct {
	key       Key
	status    Status
	data      any
	hasData   bool
	err       error
	fetchedAt time.Time
	gen       uint64
}

func (e *entry) snapshot() Entry {
	return Entry{
		Key:       e.key,
		Status:    e.status,
		Data:      e.data,
		HasData:   e.hasData,
		Err:       e.err,
		FetchedAt: e.fetchedAt,
	}
}

// Cache is the process-wide query cache. It is auth-agnostic: callers
// decide whether a key may be fetched at all. It guarantees at most one
// in-flight fetch per key; concurrent Ensure calls for the same key
// attach to the running fetch instead of issuing a second one.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	flights singleflight.Group

	// authRejected runs when a fetch fails with api.ErrUnauthorized,
	// before the error is propagated. The app wires it to the session
	// store's ClearAuth.
	authRejected func()
}

// New returns an empty cache. authRejected may be nil.
func New(authRejected func()) *Cache {
	return &Cache{
		entries:      make(map[string]*entry),
		authRejected: authRejected,
	}
}

// Get returns a snapshot of the entry for key. Side-effect-free.
func (c *Cache) Get(key Key) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	if !ok {
		return Entry{}, false
	}
	return e.snapshot(), true
}

// Ensure returns the cached entry for key if it is Success and still
// fresh; otherwise it transitions the entry to Loading, runs fetch, and
// returns the resolved entry. The entry's previous data survives a
// failed fetch so views can keep rendering it.
func (c *Cache) Ensure(ctx context.Context, key Key, fetch FetchFunc, opts Options) (Entry, error) {
	k := key.String()

	c.mu.Lock()
	e, ok := c.entries[k]
	if !ok {
		e = &entry{key: key, status: StatusIdle}
		c.entries[k] = e
	}
	if c.freshLocked(e, opts) {
		snap := e.snapshot()
		c.mu.Unlock()
		return snap, nil
	}
	e.status = StatusLoading
	c.mu.Unlock()

	// Only the flight executor resolves the entry; waiters share its
	// snapshot. That keeps resolution tied to the generation the fetch
	// actually started under.
	res, err, _ := c.flights.Do(k, func() (any, error) {
		c.mu.Lock()
		e, ok := c.entries[k]
		if ok && c.freshLocked(e, opts) {
			// A sibling caller completed the fetch between our
			// freshness check and joining the flight.
			snap := e.snapshot()
			c.mu.Unlock()
			return snap, nil
		}
		var gen uint64
		if ok {
			gen = e.gen
		}
		c.mu.Unlock()

		data, ferr := fetch(ctx)
		snap := c.resolve(k, gen, data, ferr)

		if ferr != nil && errors.Is(ferr, api.ErrUnauthorized) && c.authRejected != nil {
			c.authRejected()
		}
		return snap, ferr
	})

	snap, _ := res.(Entry)
	return snap, err
}

// freshLocked reports whether e can be returned without fetching.
func (c *Cache) freshLocked(e *entry, opts Options) bool {
	if e.status != StatusSuccess {
		return false
	}
	if opts.StaleAfter <= 0 {
		return true
	}
	return time.Since(e.fetchedAt) <= opts.StaleAfter
}

// resolve applies a fetch outcome to the entry, honoring invalidations
// and purges that happened while the fetch was in flight.
func (c *Cache) resolve(k string, startGen uint64, data any, err error) Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[k]
	if !ok {
		// Purged mid-flight (forced logout): drop the result.
		return Entry{Key: nil, Status: StatusIdle, Err: err}
	}

	superseded := e.gen != startGen

	if err != nil {
		e.err = err
		if !superseded {
			e.status = StatusError
		}
		return e.snapshot()
	}

	e.data = data
	e.hasData = true
	e.err = nil
	if superseded {
		// Invalidated while fetching: keep the payload displayable but
		// force the next Ensure to fetch again.
		e.status = StatusIdle
	} else {
		e.status = StatusSuccess
		e.fetchedAt = time.Now()
	}
	return e.snapshot()
}

// Invalidate marks every entry whose key starts with prefix as Idle,
// keeping its data as stale. It never fetches; the refetch happens
// lazily on the next Ensure for that key.
func (c *Cache) Invalidate(prefix Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			e.status = StatusIdle
			e.gen++
		}
	}
}

// Purge drops every entry, data included. Runs on logout so nothing
// cached for one user is ever served to the next.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}

// Len reports the number of entries currently held.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
