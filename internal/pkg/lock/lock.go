package lock

import (
	"context"
	"errors"
)

// ErrNotAcquired is returned when a key stays locked until the caller's context is done.
var ErrNotAcquired = errors.New("lock not acquired")

// Locker serializes work on a key. The returned unlock func must be called exactly once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
