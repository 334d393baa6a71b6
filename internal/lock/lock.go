// Package lock provides the per-campaign dispatch single-flight guard.
// Only one dispatch may be in flight per campaign id; late callers fail
// fast instead of racing reach/status updates.
package lock

import "context"

type DispatchLock interface {
    // TryAcquire claims the key. It returns false without blocking when the
    // key is already held by an unexpired dispatch.
    TryAcquire(ctx context.Context, key string) (bool, error)
    Release(ctx context.Context, key string) error
}
