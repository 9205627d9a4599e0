package memtrack

import (
	"fmt"

	"github.com/embeddedos/oskit/hal"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"golang.org/x/exp/slices"
)

// Statistics is a point-in-time snapshot of the tracker's accounting.
type Statistics struct {
	TotalAllocated  int
	PeakAllocated   int
	AllocationCount int
	FreeCount       int
	LiveBlocks      int
	AvailableHeap   int
	LargestFreeRun  int
}

func (s *Statistics) Clear() {
	*s = Statistics{}
}

// BlockInfo is one row of the memory map: a live allocation with its age
// relative to now.
type BlockInfo struct {
	Pointer hal.Pointer
	Size    int
	Tag     string
	AgeMs   uint64
}

// Statistics snapshots the accounting counters together with the heap's
// own free-space numbers.
func (t *Tracker) Statistics() (Statistics, error) {
	if !t.mutex.TryAcquire(t.lockTimeout) {
		return Statistics{}, hal.ErrLockTimeout
	}

	stats := Statistics{
		TotalAllocated:  t.totalAllocated,
		PeakAllocated:   t.peakAllocated,
		AllocationCount: t.allocationCount,
		FreeCount:       t.freeCount,
	}
	for i := range t.blocks {
		if t.blocks[i].Allocated {
			stats.LiveBlocks++
		}
	}
	t.mutex.Release()

	// Heap queries carry their own synchronization and stay outside the
	// tracker lock.
	stats.AvailableHeap = t.heap.FreeBytes()
	stats.LargestFreeRun = t.heap.LargestFreeRun()
	return stats, nil
}

// MemoryMap reports every live record, ordered by address.
func (t *Tracker) MemoryMap() ([]BlockInfo, error) {
	if !t.mutex.TryAcquire(t.lockTimeout) {
		return nil, hal.ErrLockTimeout
	}
	defer t.mutex.Release()

	now := t.clock.NowMs()
	infos := make([]BlockInfo, 0, len(t.blocks))
	for i := range t.blocks {
		if !t.blocks[i].Allocated {
			continue
		}
		infos = append(infos, BlockInfo{
			Pointer: t.blocks[i].Pointer,
			Size:    t.blocks[i].Size,
			Tag:     t.blocks[i].Tag,
			AgeMs:   now - t.blocks[i].Timestamp,
		})
	}

	slices.SortFunc(infos, func(a, b BlockInfo) bool {
		return a.Pointer < b.Pointer
	})
	return infos, nil
}

// AvailableHeap reports the heap's current free bytes.
func (t *Tracker) AvailableHeap() int {
	return t.heap.FreeBytes()
}

// LargestFreeBlock reports the heap's largest contiguous free region.
func (t *Tracker) LargestFreeBlock() int {
	return t.heap.LargestFreeRun()
}

// BuildStatsString renders the statistics and memory map as a JSON
// document for diagnostic consumption.
func (t *Tracker) BuildStatsString() (string, error) {
	stats, err := t.Statistics()
	if err != nil {
		return "", err
	}
	blocks, err := t.MemoryMap()
	if err != nil {
		return "", err
	}

	writer := jwriter.NewWriter()
	obj := writer.Object()

	obj.Name("TotalAllocated").Int(stats.TotalAllocated)
	obj.Name("PeakAllocated").Int(stats.PeakAllocated)
	obj.Name("Allocations").Int(stats.AllocationCount)
	obj.Name("Frees").Int(stats.FreeCount)
	obj.Name("LiveBlocks").Int(stats.LiveBlocks)
	obj.Name("AvailableHeap").Int(stats.AvailableHeap)
	obj.Name("LargestFreeBlock").Int(stats.LargestFreeRun)

	arr := obj.Name("Blocks").Array()
	for _, block := range blocks {
		o := arr.Object()
		o.Name("Address").String(formatAddress(block.Pointer))
		o.Name("Size").Int(block.Size)
		o.Name("Tag").String(block.Tag)
		o.Name("AgeMs").Int(int(block.AgeMs))
		o.End()
	}
	arr.End()
	obj.End()

	if err := writer.Error(); err != nil {
		return "", err
	}
	return string(writer.Bytes()), nil
}

func formatAddress(ptr hal.Pointer) string {
	return fmt.Sprintf("0x%08X", uint64(ptr))
}

func clipTag(tag string) string {
	if tag == "" {
		return DefaultTag
	}
	if len(tag) > MaxTagLength {
		return tag[:MaxTagLength]
	}
	return tag
}
