// Package quorum implements the fan-out/collect executor every
// coordination primitive in this module is built on: run an operation
// against N backends concurrently, and decide success by majority
// agreement within a bounded time budget rather than by any single
// backend's answer.
//
// Run computes a quorum size of ⌊N/2⌋+1 (1 for the WaitAny strategy) and a
// clock-drift allowance of
// ⌈timeout×0.01⌉ plus a small fixed term, fans f out to every backend under
// a cancelable xrun.Group, and returns the collected results only if both
// the quorum size and the drift-adjusted validity window were satisfied.
// Any per-backend failure must be absorbed by f into a nil result — Run
// itself never returns an error.
//
// Retrying layers a fixed-count, fixed-delay retry loop on top of Run for
// callers (the latch's CountDown) whose contract says a quorum miss should
// be retried rather than reported immediately. redlock and semaphore drive
// their own retry loop around Run instead, so they can roll back after
// each missed attempt.
package quorum
