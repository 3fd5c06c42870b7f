// Package semaphore implements a bounded-concurrency counting semaphore
// over N independent backends: up to maxLeases holders may hold the same
// key at once, decided by the same quorum/validity discipline redlock
// uses, with a cleanup pass ahead of every acquire to reclaim slots left
// behind by holders that crashed without releasing them.
package semaphore
