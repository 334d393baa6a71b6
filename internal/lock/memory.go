package lock

import (
    "context"
    "sync"
    "time"
)

// MemoryLock is the single-process guard. Entries expire after the TTL so a
// crashed dispatch cannot wedge a campaign forever.
type MemoryLock struct {
    mu   sync.Mutex
    held map[string]time.Time
    ttl  time.Duration
}

func NewMemoryLock(ttl time.Duration) *MemoryLock {
    return &MemoryLock{
        held: make(map[string]time.Time),
        ttl:  ttl,
    }
}

func (l *MemoryLock) TryAcquire(_ context.Context, key string) (bool, error) {
    l.mu.Lock()
    defer l.mu.Unlock()

    if acquiredAt, ok := l.held[key]; ok && time.Since(acquiredAt) < l.ttl {
        return false, nil
    }
    l.held[key] = time.Now()
    return true, nil
}

func (l *MemoryLock) Release(_ context.Context, key string) error {
    l.mu.Lock()
    defer l.mu.Unlock()
    delete(l.held, key)
    return nil
}

var _ DispatchLock = (*MemoryLock)(nil)
