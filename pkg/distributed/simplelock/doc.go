// Package simplelock implements the single-instance lock primitive: the
// per-backend key lifecycle the quorum lock (redlock) is built from, plus a
// standalone Lock usable against one backend without any quorum machinery.
// The semaphore does not use this package; it has its own backend
// operations.
//
// LockInstance and UnlockInstance are the building blocks redlock fans out
// across backends. Lock wraps a single backend with an owner id and a
// fixed-count/fixed-delay retry loop for callers that only have one
// Redis-compatible endpoint and don't need the quorum executor at all.
package simplelock
