// Package latch implements a distributed count-down latch: any number of
// participants call CountDown, and any number of waiters call Await to
// block until count decrements have landed, combining a pub/sub wake-up
// (fast, but can miss a publish) with a polling fallback over the first
// backend's CheckCount (slow, but can't miss one).
//
// CountDown only advances its instance's local counter after the quorum
// executor reports a successful attempt; a quorum miss triggers a
// best-effort rollback instead, so a retried CountDown always resubmits
// the same ownerId/count token rather than double-counting once the
// submission does land.
package latch
