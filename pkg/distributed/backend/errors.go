package backend

import "errors"

// ErrNilClient is returned by NewRedis when the supplied redis.UniversalClient is nil.
var ErrNilClient = errors.New("backend: redis client must not be nil")
