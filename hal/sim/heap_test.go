package sim

import (
	"testing"

	"github.com/embeddedos/oskit/hal"
	"github.com/stretchr/testify/require"
)

func TestAllocNeverReturnsNil(t *testing.T) {
	h := NewHeap(1024)

	ptr, err := h.Alloc(16)
	require.NoError(t, err)
	require.NotEqual(t, hal.NilPointer, ptr)
	require.Equal(t, 1024-16, h.FreeBytes())
}

func TestAllocRejectsInvalidSize(t *testing.T) {
	h := NewHeap(1024)

	_, err := h.Alloc(0)
	require.Error(t, err)
	_, err = h.Alloc(-4)
	require.Error(t, err)
}

func TestAllocExhaustion(t *testing.T) {
	h := NewHeap(64)

	_, err := h.Alloc(64)
	require.NoError(t, err)

	_, err = h.Alloc(1)
	require.ErrorIs(t, err, hal.ErrOutOfMemory)
}

func TestDeallocCoalescesNeighbors(t *testing.T) {
	h := NewHeap(300)

	a, err := h.Alloc(100)
	require.NoError(t, err)
	b, err := h.Alloc(100)
	require.NoError(t, err)
	c, err := h.Alloc(100)
	require.NoError(t, err)

	// Free the outer blocks first, then the middle one. All three must
	// merge back into a single run.
	h.Dealloc(a)
	h.Dealloc(c)
	require.Equal(t, 200, h.FreeBytes())
	require.Equal(t, 100, h.LargestFreeRun())

	h.Dealloc(b)
	require.Equal(t, 300, h.FreeBytes())
	require.Equal(t, 300, h.LargestFreeRun())
}

func TestDeallocUnknownPointerIsIgnored(t *testing.T) {
	h := NewHeap(128)
	h.Dealloc(hal.Pointer(0xBEEF))
	require.Equal(t, 128, h.FreeBytes())
}

func TestFirstFitReusesFreedSpace(t *testing.T) {
	h := NewHeap(300)

	a, err := h.Alloc(100)
	require.NoError(t, err)
	_, err = h.Alloc(100)
	require.NoError(t, err)

	h.Dealloc(a)

	// The freed low region fits the next request and is placed first.
	reused, err := h.Alloc(50)
	require.NoError(t, err)
	require.Equal(t, a, reused)
}

func TestMinFreeTracksLowWater(t *testing.T) {
	h := NewHeap(1000)
	require.Equal(t, 1000, h.MinFreeBytes())

	ptr, err := h.Alloc(700)
	require.NoError(t, err)
	require.Equal(t, 300, h.MinFreeBytes())

	h.Dealloc(ptr)
	require.Equal(t, 1000, h.FreeBytes())
	// The low-water mark is sticky.
	require.Equal(t, 300, h.MinFreeBytes())
}

func TestBytesExposesBackingMemory(t *testing.T) {
	h := NewHeap(256)

	ptr, err := h.Alloc(8)
	require.NoError(t, err)

	buf := h.Bytes(ptr)
	require.Len(t, buf, 8)
	copy(buf, []byte("datadata"))
	require.Equal(t, []byte("datadata"), h.Bytes(ptr))

	require.Nil(t, h.Bytes(hal.Pointer(0xBEEF)))
}
