package kernel

import (
	"log/slog"

	"github.com/embeddedos/oskit/config"
	"github.com/embeddedos/oskit/hal"
	"github.com/embeddedos/oskit/memtrack"
	"github.com/google/uuid"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

// SystemStats is a snapshot of the kernel-level aggregates plus the
// memory tracker's own statistics.
type SystemStats struct {
	BootID        uuid.UUID
	Version       string
	UptimeSeconds uint64
	TotalTasks    int
	FreeMemory    int
	MinFreeMemory int
	Healthy       bool
	Memory        memtrack.Statistics
}

// UpdateSystemStats recomputes uptime from the monotonic clock, re-reads
// the heap's free-space numbers and re-derives the health flag. Uptime
// never goes backward. Health is a single-threshold model: callers
// needing finer-grained checks compose them on top of the flag.
func (k *Kernel) UpdateSystemStats() error {
	if !k.mutex.TryAcquire(k.lockTimeout) {
		return hal.ErrLockTimeout
	}
	defer k.mutex.Release()

	if !k.initialized {
		return nil
	}

	uptime := (k.clock.NowMs() - k.bootTime) / 1000
	if uptime > k.uptimeSeconds {
		k.uptimeSeconds = uptime
	}

	k.freeMem = k.heap.FreeBytes()
	k.minFreeMem = k.heap.MinFreeBytes()

	wasHealthy := k.healthy
	k.healthy = k.freeMem >= k.healthyThreshold
	if wasHealthy && !k.healthy {
		k.logger.Warn("low memory condition detected",
			slog.Int("freeMem", k.freeMem), slog.Int("threshold", k.healthyThreshold))
	}
	return nil
}

// Stats refreshes and reports the system statistics snapshot.
func (k *Kernel) Stats() (SystemStats, error) {
	if err := k.UpdateSystemStats(); err != nil {
		return SystemStats{}, err
	}

	memStats, err := k.memory.Statistics()
	if err != nil {
		return SystemStats{}, err
	}

	if !k.mutex.TryAcquire(k.lockTimeout) {
		return SystemStats{}, hal.ErrLockTimeout
	}
	defer k.mutex.Release()

	return SystemStats{
		BootID:        k.bootID,
		Version:       config.Version,
		UptimeSeconds: k.uptimeSeconds,
		TotalTasks:    k.totalTasks,
		FreeMemory:    k.freeMem,
		MinFreeMemory: k.minFreeMem,
		Healthy:       k.healthy,
		Memory:        memStats,
	}, nil
}

// Healthy reports the current health flag without refreshing it. A
// caller that cannot obtain the lock within the bounded wait gets false:
// health that cannot be verified is not reported as good.
func (k *Kernel) Healthy() bool {
	if !k.mutex.TryAcquire(k.lockTimeout) {
		return false
	}
	defer k.mutex.Release()
	return k.healthy
}

// BuildStatsString renders the system statistics as a JSON document.
func (k *Kernel) BuildStatsString() (string, error) {
	stats, err := k.Stats()
	if err != nil {
		return "", err
	}

	writer := jwriter.NewWriter()
	obj := writer.Object()

	obj.Name("BootID").String(stats.BootID.String())
	obj.Name("Version").String(stats.Version)
	obj.Name("UptimeSeconds").Int(int(stats.UptimeSeconds))
	obj.Name("TotalTasks").Int(stats.TotalTasks)
	obj.Name("FreeMemory").Int(stats.FreeMemory)
	obj.Name("MinFreeMemory").Int(stats.MinFreeMemory)
	obj.Name("Healthy").Bool(stats.Healthy)

	mem := obj.Name("Memory").Object()
	mem.Name("TotalAllocated").Int(stats.Memory.TotalAllocated)
	mem.Name("PeakAllocated").Int(stats.Memory.PeakAllocated)
	mem.Name("Allocations").Int(stats.Memory.AllocationCount)
	mem.Name("Frees").Int(stats.Memory.FreeCount)
	mem.Name("LiveBlocks").Int(stats.Memory.LiveBlocks)
	mem.End()

	obj.End()

	if err := writer.Error(); err != nil {
		return "", err
	}
	return string(writer.Bytes()), nil
}
