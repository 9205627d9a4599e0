package utils

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTryAcquireUncontended(t *testing.T) {
	m := NewTimedMutex()
	require.True(t, m.TryAcquire(time.Millisecond))
	m.Release()
}

func TestTryAcquireTimesOutWhileHeld(t *testing.T) {
	m := NewTimedMutex()
	require.True(t, m.TryAcquire(time.Millisecond))

	start := time.Now()
	require.False(t, m.TryAcquire(30*time.Millisecond))
	require.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)

	m.Release()
	require.True(t, m.TryAcquire(time.Millisecond))
	m.Release()
}

func TestAcquireWaitsForRelease(t *testing.T) {
	m := NewTimedMutex()
	m.Acquire()

	acquired := make(chan struct{})
	go func() {
		m.Acquire()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("acquired while held")
	case <-time.After(20 * time.Millisecond):
	}

	m.Release()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("never acquired after release")
	}
	m.Release()
}

func TestReleaseUnheldPanics(t *testing.T) {
	m := NewTimedMutex()
	require.Panics(t, func() { m.Release() })
}

func TestMutualExclusionUnderContention(t *testing.T) {
	m := NewTimedMutex()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Acquire()
				counter++
				m.Release()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 800, counter)
}
