package utils

import "time"

// TimedMutex is a binary mutual-exclusion lock with bounded-wait
// acquisition. It backs every lock in the kernel core: a failed
// TryAcquire is reported to the caller instead of blocking forever
// behind a stalled holder.
type TimedMutex struct {
	ch chan struct{}
}

func NewTimedMutex() *TimedMutex {
	m := &TimedMutex{ch: make(chan struct{}, 1)}
	m.ch <- struct{}{}
	return m
}

// TryAcquire waits up to timeout for the lock and reports whether it was
// acquired.
func (m *TimedMutex) TryAcquire(timeout time.Duration) bool {
	select {
	case <-m.ch:
		return true
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-m.ch:
		return true
	case <-timer.C:
		return false
	}
}

// Acquire blocks until the lock is held. Reserved for shutdown paths,
// which must run even when the lock is contended.
func (m *TimedMutex) Acquire() {
	<-m.ch
}

func (m *TimedMutex) Release() {
	select {
	case m.ch <- struct{}{}:
	default:
		panic("release of a TimedMutex that is not held")
	}
}
