// Package concurrency serializes in-process writers per key
package concurrency

import (
	"context"
	"strconv"
	"sync"
)

// LockManager hands out one lock per key. A lock is a single-slot channel
// so a waiter can give up when its context ends.
type LockManager struct {
	locks sync.Map // key -> chan struct{}
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

func (lm *LockManager) slot(key string) chan struct{} {
	if v, ok := lm.locks.Load(key); ok {
		return v.(chan struct{})
	}
	v, _ := lm.locks.LoadOrStore(key, make(chan struct{}, 1))
	return v.(chan struct{})
}

// Lock blocks until key is free or ctx is done. The returned func releases it.
func (lm *LockManager) Lock(ctx context.Context, key string) (unlock func(), err error) {
	s := lm.slot(key)
	select {
	case s <- struct{}{}:
		return func() { <-s }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TryLock takes key only if nobody holds it
func (lm *LockManager) TryLock(key string) (unlock func(), ok bool) {
	s := lm.slot(key)
	select {
	case s <- struct{}{}:
		return func() { <-s }, true
	default:
		return nil, false
	}
}

// WithLock runs fn while holding the lock for key
func (lm *LockManager) WithLock(ctx context.Context, key string, fn func() error) error {
	unlock, err := lm.Lock(ctx, key)
	if err != nil {
		return err
	}
	defer unlock()
	return fn()
}

// ProfileKey is the lock key serializing writes to one profile
func ProfileKey(profileID int64) string {
	return "profile:" + strconv.FormatInt(profileID, 10)
}
