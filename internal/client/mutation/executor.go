// Package mutation performs writes against the backend and keeps the
// query cache honest afterwards: a confirmed write invalidates the key
// prefixes it affects, so dependent views refetch on their next read.
// The cache is never touched speculatively.
package mutation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskboard/internal/client/api"
	"github.com/dmitrijs2005/taskboard/internal/client/query"
	"github.com/dmitrijs2005/taskboard/internal/logging"
)

// Op classifies a write.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// CallFunc performs the single resource-client call behind a mutation
// and returns the decoded result.
type CallFunc func(ctx context.Context) (any, error)

// Request describes one write. Resource, Op and TargetID identify the
// mutation; Call performs it; AffectedKeys lists the cache key prefixes
// to invalidate once the backend confirms the write.
type Request struct {
	Resource     string
	Op           Op
	TargetID     string
	Call         CallFunc
	AffectedKeys []query.Key
}

// Fingerprint identifies the (resource, op, target) tuple. The executor
// does not dedupe concurrent submissions itself; callers that must
// avoid double-submits (form double-click) compare fingerprints or, as
// the views do, refuse to submit while a submission is in flight.
func (r Request) Fingerprint() string {
	return strings.Join([]string{r.Resource, string(r.Op), r.TargetID}, "/")
}

// Executor runs mutations. Safe for concurrent use.
type Executor struct {
	cache *query.Cache
	log   logging.Logger

	// authRejected runs when the backend rejects the write as
	// unauthenticated, before the error is returned.
	authRejected func()
}

// New returns an executor invalidating through cache. authRejected may
// be nil.
func New(cache *query.Cache, log logging.Logger, authRejected func()) *Executor {
	return &Executor{cache: cache, log: log, authRejected: authRejected}
}

// Execute performs the request's single write. On success it
// invalidates every affected prefix and returns the decoded result. On
// failure the cache is left untouched and the error is returned for the
// caller to render.
func (e *Executor) Execute(ctx context.Context, req Request) (any, error) {
	if req.Call == nil {
		return nil, fmt.Errorf("mutation %s: no call", req.Fingerprint())
	}

	result, err := req.Call(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) && e.authRejected != nil {
			e.authRejected()
		}
		e.log.Error(ctx, "mutation failed", "mutation", req.Fingerprint(), "error", err)
		return nil, err
	}

	for _, prefix := range req.AffectedKeys {
		e.cache.Invalidate(prefix)
	}
	e.log.Info(ctx, "mutation confirmed", "mutation", req.Fingerprint(), "invalidated", len(req.AffectedKeys))

	return result, nil
}
