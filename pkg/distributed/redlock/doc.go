// Package redlock implements a Redlock-style quorum lock on top of
// pkg/distributed/quorum and pkg/distributed/simplelock: on each attempt of
// its fixed-count retry loop, Lock fans simplelock.LockInstance out to every
// backend via quorum.Run, and rolls back on every backend if that attempt
// doesn't reach a majority within the clock-drift-adjusted validity window.
//
// The owner-equality conditional delete used for Unlock is a fencing-token
// substitute, not a fencing token: it is sufficient for mutual exclusion
// between RedLock instances but does not protect a downstream resource
// from a lock holder that has stalled past its TTL. Prefer shorter TTLs on
// safety-critical paths.
package redlock
