// Package lock serializes booking operations per car. Every create, cancel
// and complete runs under the car's lock, so at most one writer can pass the
// availability check and insert a booking for any overlapping date range.
package lock

import (
	"context"
	"sync"
)

// CarLocker guards all booking writes for a single car. Release must be
// called with the value returned by Acquire.
type CarLocker interface {
	Acquire(ctx context.Context, carID string) (release func(), err error)
}

// MemoryLocker is a keyed mutex for single-instance deployments.
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]*carLock
}

type carLock struct {
	mu   sync.Mutex
	refs int
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{locks: make(map[string]*carLock)}
}

func (ml *MemoryLocker) Acquire(ctx context.Context, carID string) (func(), error) {
	ml.mu.Lock()
	cl, ok := ml.locks[carID]
	if !ok {
		cl = &carLock{}
		ml.locks[carID] = cl
	}
	cl.refs++
	ml.mu.Unlock()

	cl.mu.Lock()

	release := func() {
		cl.mu.Unlock()
		ml.mu.Lock()
		cl.refs--
		if cl.refs == 0 {
			delete(ml.locks, carID)
		}
		ml.mu.Unlock()
	}
	return release, nil
}
