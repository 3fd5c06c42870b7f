package xrun

import "errors"

// ErrNilFunc is returned by a goroutine registered via Go or GoWithName
// when the supplied function is nil.
var ErrNilFunc = errors.New("xrun: fn must not be nil")
