// Package hal declares the contracts of the external collaborators the
// kernel core is layered over: the raw heap allocator, the preemptive
// task scheduler, the monotonic clock and the board peripherals. The
// core consumes these interfaces and never implements them itself; see
// the sim subpackage for software stand-ins.
package hal

import (
	"context"

	"github.com/cockroachdb/errors"
)

// Pointer is an opaque handle to a region of heap memory. Ownership of the
// region belongs to whoever received the Pointer from Heap.Alloc; the heap
// itself only hands regions out and takes them back.
type Pointer uint64

// NilPointer is the null pointer. Heap implementations never return it
// for a successful allocation.
const NilPointer Pointer = 0

// ErrOutOfMemory is returned by Heap.Alloc when the heap cannot satisfy
// the requested size.
var ErrOutOfMemory = errors.New("heap exhausted")

// ErrLockTimeout is reported by any bounded-wait operation in the kernel
// core whose lock acquisition attempt exceeded its timeout. The failure
// is report-only; the caller may retry.
var ErrLockTimeout = errors.New("lock acquisition timed out")

// Heap is the raw allocator underneath the instrumented memory tracker.
// Implementations must be safe for concurrent use.
type Heap interface {
	// Alloc obtains a region of at least size bytes. It returns
	// ErrOutOfMemory when no suitable region exists.
	Alloc(size int) (Pointer, error)
	// Dealloc returns a region to the heap. Passing a pointer that is not
	// a live allocation is undefined behavior, which is exactly why the
	// tracker screens pointers before delegating here.
	Dealloc(ptr Pointer)
	// Bytes exposes the backing memory of a live allocation. The returned
	// slice is valid until the allocation is deallocated.
	Bytes(ptr Pointer) []byte
	// FreeBytes reports the number of bytes currently free.
	FreeBytes() int
	// MinFreeBytes reports the lowest value FreeBytes has ever reached.
	MinFreeBytes() int
	// LargestFreeRun reports the size of the largest contiguous free region.
	LargestFreeRun() int
}

// TaskState is a snapshot of a scheduled task's run state. Values cached
// by the task registry are only as fresh as the last refresh call.
type TaskState int32

const (
	TaskStateReady TaskState = iota
	TaskStateRunning
	TaskStateBlocked
	TaskStateSuspended
	TaskStateUnknown
)

func (s TaskState) String() string {
	switch s {
	case TaskStateReady:
		return "Ready"
	case TaskStateRunning:
		return "Running"
	case TaskStateBlocked:
		return "Blocked"
	case TaskStateSuspended:
		return "Suspended"
	}
	return "Unknown"
}

// TaskHandle is an opaque reference to a task owned by the external
// scheduler. The zero value never refers to a live task.
type TaskHandle int64

// NilTask is the zero TaskHandle.
const NilTask TaskHandle = 0

// TaskFunc is a task entry point. The context is cancelled when the task
// is terminated; well-behaved tasks watch it and return.
type TaskFunc func(ctx context.Context, arg any)

// Scheduler is the preemptive task scheduler the registry delegates to.
// Task switching, priorities and stack management all happen behind this
// interface. Implementations must be safe for concurrent use.
type Scheduler interface {
	// Spawn creates a concurrently-executing task with the given entry
	// point, stack budget in words, opaque argument and priority.
	Spawn(name string, fn TaskFunc, stackWords int, arg any, priority int) (TaskHandle, error)
	// Terminate stops a task immediately. There is no graceful shutdown
	// protocol; the scheduler's stack-reclamation rules apply.
	Terminate(handle TaskHandle)
	Suspend(handle TaskHandle)
	Resume(handle TaskHandle)
	// QueryState reports the task's current run state, or TaskStateUnknown
	// for a handle the scheduler no longer recognizes.
	QueryState(handle TaskHandle) TaskState
	// StackHighWaterMark reports the task's minimum observed stack
	// headroom in words.
	StackHighWaterMark(handle TaskHandle) int
}

// Clock provides monotonic milliseconds since an arbitrary origin. It
// must never go backward.
type Clock interface {
	NowMs() uint64
}
