// Package distributed provides client-side distributed coordination
// primitives backed by a set of independent Redis-like key-value servers.
//
// Sub-packages:
//   - ownerid: random 128-bit owner identifiers
//   - backend: the capability interfaces a key-value server must expose,
//     plus a go-redis/v9 implementation
//   - quorum: the fan-out/collect engine that runs an operation against N
//     backends under a deadline and enforces a majority rule
//   - simplelock: the per-backend lock/unlock primitive the lock algorithms
//     are built from
//   - redlock: a Redlock-style quorum mutex
//   - semaphore: a quorum-backed counting semaphore with lease cleanup
//   - latch: a quorum-backed count-down latch with pub/sub wake-up
//
// Design principles:
//   - the coordination layer (quorum, redlock, semaphore, latch) never
//     imports a concrete backend package directly; it depends only on the
//     interfaces in backend
//   - ordinary failures (backend errors, quorum misses, timeouts) are
//     reported as bool/enum return values, never as Go errors; errors are
//     reserved for precondition violations at construction time
package distributed
