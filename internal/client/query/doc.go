// Package query implements the client's keyed query cache.
//
// # Model
//
// Every logical read (a project list, a task, a task's subtasks) is
// identified by a Key — an ordered tuple of strings. The cache holds at
// most one Entry per key, moving it through Idle → Loading → Success or
// Error as fetches run. Data is never discarded on invalidation or on a
// failed refetch; it stays available as a stale value so views can keep
// rendering something useful.
//
// # Guarantees
//
//   - At most one fetch is in flight per key. Concurrent Ensure calls
//     for the same key attach to the running fetch.
//   - Invalidate marks matching entries Idle and never fetches itself;
//     the refetch happens lazily on the next Ensure.
//   - An invalidation that lands while a fetch is in flight wins: the
//     completed result is stored as stale Idle data, not as fresh
//     Success.
//   - Purge empties the cache entirely; in-flight results for purged
//     entries are dropped.
//
// The cache is auth-agnostic. Callers must not Ensure auth-required
// keys without a session token; see the views package for the gate.
package query
