// Package sim provides software stand-ins for the hal collaborator
// contracts: an arena-backed heap, a goroutine-backed scheduler, a
// monotonic clock and an in-memory board. They exist so the kernel core
// can run and be tested off-target.
package sim

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/embeddedos/oskit/hal"
)

// heapBase offsets returned pointers so that hal.NilPointer never
// collides with a live allocation at arena offset zero.
const heapBase hal.Pointer = 0x1000

type span struct {
	off  int
	size int
}

// Heap is a fixed-size arena with a first-fit free list. Adjacent free
// spans coalesce on deallocation. It tracks the minimum free level ever
// observed, mirroring what firmware heaps report.
type Heap struct {
	mu      sync.Mutex
	arena   []byte
	live    map[hal.Pointer]int
	free    []span
	minFree int
}

var _ hal.Heap = (*Heap)(nil)

func NewHeap(size int) *Heap {
	if size <= 0 {
		panic("heap size must be positive")
	}
	return &Heap{
		arena:   make([]byte, size),
		live:    make(map[hal.Pointer]int),
		free:    []span{{off: 0, size: size}},
		minFree: size,
	}
}

func (h *Heap) Alloc(size int) (hal.Pointer, error) {
	if size <= 0 {
		return hal.NilPointer, errors.Newf("invalid allocation size %d", size)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.free {
		if h.free[i].size < size {
			continue
		}

		off := h.free[i].off
		if h.free[i].size == size {
			h.free = append(h.free[:i], h.free[i+1:]...)
		} else {
			h.free[i].off += size
			h.free[i].size -= size
		}

		ptr := heapBase + hal.Pointer(off)
		h.live[ptr] = size

		if free := h.freeBytesLocked(); free < h.minFree {
			h.minFree = free
		}
		return ptr, nil
	}

	return hal.NilPointer, errors.Wrapf(hal.ErrOutOfMemory, "requested %d bytes", size)
}

func (h *Heap) Dealloc(ptr hal.Pointer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	size, ok := h.live[ptr]
	if !ok {
		return
	}
	delete(h.live, ptr)
	h.insertFree(span{off: int(ptr - heapBase), size: size})
}

// insertFree keeps the free list address-ordered and merges the new span
// with its neighbors.
func (h *Heap) insertFree(s span) {
	idx := len(h.free)
	for i := range h.free {
		if h.free[i].off > s.off {
			idx = i
			break
		}
	}

	h.free = append(h.free, span{})
	copy(h.free[idx+1:], h.free[idx:])
	h.free[idx] = s

	// Merge with the following span, then the preceding one.
	if idx+1 < len(h.free) && h.free[idx].off+h.free[idx].size == h.free[idx+1].off {
		h.free[idx].size += h.free[idx+1].size
		h.free = append(h.free[:idx+1], h.free[idx+2:]...)
	}
	if idx > 0 && h.free[idx-1].off+h.free[idx-1].size == h.free[idx].off {
		h.free[idx-1].size += h.free[idx].size
		h.free = append(h.free[:idx], h.free[idx+1:]...)
	}
}

func (h *Heap) Bytes(ptr hal.Pointer) []byte {
	h.mu.Lock()
	defer h.mu.Unlock()

	size, ok := h.live[ptr]
	if !ok {
		return nil
	}
	off := int(ptr - heapBase)
	return h.arena[off : off+size]
}

func (h *Heap) FreeBytes() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.freeBytesLocked()
}

func (h *Heap) freeBytesLocked() int {
	total := 0
	for _, s := range h.free {
		total += s.size
	}
	return total
}

func (h *Heap) MinFreeBytes() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.minFree
}

func (h *Heap) LargestFreeRun() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	largest := 0
	for _, s := range h.free {
		if s.size > largest {
			largest = s.size
		}
	}
	return largest
}
