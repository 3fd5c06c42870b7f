// Package ownerid generates the random owner identifiers that every
// lock/semaphore/latch instance in this module uses as its sole proof of
// ownership.
package ownerid

import "github.com/google/uuid"

// New returns a fresh, globally unique 128-bit identifier serialized as
// text. It is generated once at instance construction and used for the
// lifetime of that instance; the library never regenerates it mid-flight.
//
// The returned value is the sole token an owner-equality conditional delete
// accepts (see simplelock.Unlock, redlock.Unlock). It substitutes for a
// monotonic fencing token: sufficient to stop a second client from stealing
// a lease out from under its owner, but it does not stop a lagging holder
// from writing to a downstream resource after its lease has in fact
// expired. Callers on safety-critical paths should prefer shorter TTLs over
// relying on owner-id equality alone.
func New() string {
	return uuid.New().String()
}
