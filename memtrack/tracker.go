// Package memtrack layers a fixed-size table of tagged allocation
// records over an opaque heap allocator. It produces usage statistics
// and leak visibility; it does not place or coalesce memory itself.
package memtrack

import (
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/embeddedos/oskit/hal"
	"github.com/embeddedos/oskit/internal/utils"
)

// MaxTagLength bounds the debug label stored with each record. Longer
// tags are clipped, mirroring the fixed-width label field the records
// were designed around.
const MaxTagLength = 15

// DefaultTag is recorded when the caller provides no tag.
const DefaultTag = "unknown"

// Record is one slot in the allocation table. An inactive slot is fully
// zeroed and immediately reusable.
type Record struct {
	Pointer   hal.Pointer
	Size      int
	Tag       string
	Timestamp uint64
	Allocated bool
}

// Options configures a Tracker. Zero fields fall back to the documented
// defaults.
type Options struct {
	// Capacity is the number of record slots (default 64).
	Capacity int
	// Alignment rounds every requested size up before allocation and
	// accounting. Must be a power of two (default 4).
	Alignment int
	// LockTimeout bounds every lock acquisition (default 1s).
	LockTimeout time.Duration
}

// Tracker is the instrumented allocator. All operations are bounded-wait:
// they fail with hal.ErrLockTimeout instead of blocking forever. Readers
// take the same lock as writers.
type Tracker struct {
	logger *slog.Logger
	heap   hal.Heap
	clock  hal.Clock

	mutex       *utils.TimedMutex
	lockTimeout time.Duration
	alignment   int

	blocks    []Record
	byPointer *swiss.Map[hal.Pointer, int]

	totalAllocated  int
	peakAllocated   int
	allocationCount int
	freeCount       int
}

// New creates a Tracker over the given heap and clock.
func New(logger *slog.Logger, heap hal.Heap, clock hal.Clock, opts Options) (*Tracker, error) {
	if heap == nil {
		return nil, errors.New("memtrack requires a heap")
	}
	if clock == nil {
		return nil, errors.New("memtrack requires a clock")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Capacity <= 0 {
		opts.Capacity = 64
	}
	if opts.Alignment <= 0 {
		opts.Alignment = 4
	}
	if opts.Alignment&(opts.Alignment-1) != 0 {
		return nil, errors.Newf("alignment %d is not a power of two", opts.Alignment)
	}
	if opts.LockTimeout <= 0 {
		opts.LockTimeout = time.Second
	}

	return &Tracker{
		logger:      logger,
		heap:        heap,
		clock:       clock,
		mutex:       utils.NewTimedMutex(),
		lockTimeout: opts.LockTimeout,
		alignment:   opts.Alignment,
		blocks:      make([]Record, opts.Capacity),
		byPointer:   swiss.NewMap[hal.Pointer, int](uint32(opts.Capacity)),
	}, nil
}

// Capacity reports the number of record slots.
func (t *Tracker) Capacity() int { return len(t.blocks) }

func alignUp(value, alignment int) int {
	return (value + alignment - 1) &^ (alignment - 1)
}

// Allocate requests size bytes from the heap and records the allocation
// under tag. The size is rounded up to the configured alignment before
// both allocation and accounting.
func (t *Tracker) Allocate(size int, tag string) (hal.Pointer, error) {
	if size <= 0 {
		return hal.NilPointer, errors.Wrapf(ErrInvalidSize, "got %d", size)
	}
	size = alignUp(size, t.alignment)

	if !t.mutex.TryAcquire(t.lockTimeout) {
		return hal.NilPointer, hal.ErrLockTimeout
	}
	defer t.mutex.Release()

	return t.allocateLocked(size, clipTag(tag))
}

// allocateLocked assumes size is aligned and tag is clipped.
func (t *Tracker) allocateLocked(size int, tag string) (hal.Pointer, error) {
	slot := t.findFreeSlotLocked()
	if slot < 0 {
		t.logger.Warn("allocation table full", slog.Int("capacity", len(t.blocks)))
		return hal.NilPointer, ErrNoCapacity
	}

	ptr, err := t.heap.Alloc(size)
	if err != nil {
		t.logger.Warn("heap refused allocation",
			slog.Int("size", size), slog.String("tag", tag), slog.String("cause", err.Error()))
		return hal.NilPointer, errors.Wrapf(ErrNoMemory, "allocating %d bytes for tag %q", size, tag)
	}

	t.blocks[slot] = Record{
		Pointer:   ptr,
		Size:      size,
		Tag:       tag,
		Timestamp: t.clock.NowMs(),
		Allocated: true,
	}
	t.byPointer.Put(ptr, slot)

	t.totalAllocated += size
	t.allocationCount++
	if t.totalAllocated > t.peakAllocated {
		t.peakAllocated = t.totalAllocated
	}

	t.logger.Debug("allocated",
		slog.Uint64("ptr", uint64(ptr)), slog.Int("size", size), slog.String("tag", tag))
	return ptr, nil
}

func (t *Tracker) findFreeSlotLocked() int {
	for i := range t.blocks {
		if !t.blocks[i].Allocated {
			return i
		}
	}
	return -1
}

// Free releases a tracked allocation. Freeing an address the table never
// recorded returns ErrUntrackedPointer and changes nothing; this is a
// deliberate safety net against double-free and foreign pointers.
// Freeing the nil pointer is a no-op.
func (t *Tracker) Free(ptr hal.Pointer) error {
	if ptr == hal.NilPointer {
		return nil
	}

	if !t.mutex.TryAcquire(t.lockTimeout) {
		return hal.ErrLockTimeout
	}
	defer t.mutex.Release()

	slot, ok := t.byPointer.Get(ptr)
	if !ok {
		t.logger.Warn("attempted to free untracked pointer", slog.Uint64("ptr", uint64(ptr)))
		return errors.Wrapf(ErrUntrackedPointer, "0x%x", uint64(ptr))
	}

	t.freeLocked(slot)
	return nil
}

func (t *Tracker) freeLocked(slot int) {
	rec := t.blocks[slot]
	t.heap.Dealloc(rec.Pointer)

	t.totalAllocated -= rec.Size
	t.freeCount++

	t.logger.Debug("freed",
		slog.Uint64("ptr", uint64(rec.Pointer)), slog.Int("size", rec.Size), slog.String("tag", rec.Tag))

	t.byPointer.Delete(rec.Pointer)
	t.blocks[slot] = Record{}
}

// Reallocate resizes an allocation by allocating a new block, copying
// min(oldSize, newSize) bytes and freeing the old block. It is never an
// in-place resize: the returned pointer is the sole valid handle
// afterwards. newSize == 0 behaves like Free; a nil pointer behaves like
// Allocate. The whole operation runs under one lock acquisition, so no
// other caller can free or move the original in between.
func (t *Tracker) Reallocate(ptr hal.Pointer, newSize int) (hal.Pointer, error) {
	if newSize == 0 {
		return hal.NilPointer, t.Free(ptr)
	}
	if ptr == hal.NilPointer {
		return t.Allocate(newSize, "")
	}
	if newSize < 0 {
		return hal.NilPointer, errors.Wrapf(ErrInvalidSize, "got %d", newSize)
	}
	newSize = alignUp(newSize, t.alignment)

	if !t.mutex.TryAcquire(t.lockTimeout) {
		return hal.NilPointer, hal.ErrLockTimeout
	}
	defer t.mutex.Release()

	slot, ok := t.byPointer.Get(ptr)
	if !ok {
		return hal.NilPointer, errors.Wrapf(ErrNotFound, "0x%x", uint64(ptr))
	}
	oldSize := t.blocks[slot].Size
	oldTag := t.blocks[slot].Tag

	newPtr, err := t.allocateLocked(newSize, oldTag)
	if err != nil {
		return hal.NilPointer, err
	}

	n := oldSize
	if newSize < n {
		n = newSize
	}
	copy(t.heap.Bytes(newPtr)[:n], t.heap.Bytes(ptr)[:n])

	t.freeLocked(slot)
	return newPtr, nil
}

// Shutdown force-frees every live record. It waits for the lock without
// a bound: teardown must run even under contention.
func (t *Tracker) Shutdown() {
	t.mutex.Acquire()
	defer t.mutex.Release()

	leaked := 0
	for i := range t.blocks {
		if !t.blocks[i].Allocated {
			continue
		}
		t.heap.Dealloc(t.blocks[i].Pointer)
		t.byPointer.Delete(t.blocks[i].Pointer)
		t.blocks[i] = Record{}
		leaked++
	}
	t.totalAllocated = 0

	if leaked > 0 {
		t.logger.Warn("force-freed live allocations at shutdown", slog.Int("count", leaked))
	}
}
