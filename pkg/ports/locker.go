package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock taken by DistributedLocker.Lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker serializes transitions of one quiz session across processes,
// e.g. several `quizflow serve` replicas sharing a Redis store.
type DistributedLocker interface {
	// Lock blocks until the session key is held or ctx is done.
	// The lock expires after ttl if the holder never calls the returned UnlockFunc.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
