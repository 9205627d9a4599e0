// Package kernel composes the task registry and the instrumented memory
// tracker behind a single facade lock, and derives system-level
// statistics from them.
//
// Lock order is strictly one-directional: a facade operation acquires
// the kernel lock first, then the registry or tracker acquires its own
// internal lock. No path may ever take them in the reverse order; that
// ordering is what makes the nested locking deadlock-free.
package kernel

import (
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/embeddedos/oskit/config"
	"github.com/embeddedos/oskit/hal"
	"github.com/embeddedos/oskit/internal/utils"
	"github.com/embeddedos/oskit/memtrack"
	"github.com/embeddedos/oskit/taskreg"
	"github.com/google/uuid"
)

// Deps are the external collaborators the kernel is layered over. Heap,
// Scheduler and Clock are required; Board is optional and only consumed
// by Reboot and EnterLowPower.
type Deps struct {
	Logger    *slog.Logger
	Heap      hal.Heap
	Scheduler hal.Scheduler
	Clock     hal.Clock
	Board     hal.Board
}

// Kernel is the system facade. Every exposed operation is bounded-wait:
// it reports hal.ErrLockTimeout instead of blocking forever behind a
// stalled holder.
type Kernel struct {
	logger *slog.Logger
	heap   hal.Heap
	clock  hal.Clock
	board  hal.Board

	tasks  *taskreg.Registry
	memory *memtrack.Tracker

	mutex       *utils.TimedMutex
	lockTimeout time.Duration

	bootID   uuid.UUID
	bootTime uint64

	// guarded by mutex
	initialized      bool
	healthy          bool
	uptimeSeconds    uint64
	totalTasks       int
	freeMem          int
	minFreeMem       int
	healthyThreshold int
}

// New initializes the kernel and both registries. Collaborator
// construction failure aborts startup entirely; there is no degraded
// boot.
func New(cfg *config.Config, deps Deps) (*Kernel, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "kernel init")
	}
	if deps.Heap == nil {
		return nil, errors.New("kernel init: heap is required")
	}
	if deps.Scheduler == nil {
		return nil, errors.New("kernel init: scheduler is required")
	}
	if deps.Clock == nil {
		return nil, errors.New("kernel init: clock is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	memory, err := memtrack.New(logger, deps.Heap, deps.Clock, memtrack.Options{
		Capacity:    cfg.MaxMemoryBlocks,
		Alignment:   cfg.MemoryAlignment,
		LockTimeout: cfg.LockTimeout(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "kernel init: memory tracker")
	}

	tasks, err := taskreg.New(logger, deps.Scheduler, taskreg.Options{
		Capacity:    cfg.MaxTasks,
		LockTimeout: cfg.LockTimeout(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "kernel init: task registry")
	}

	k := &Kernel{
		logger:           logger,
		heap:             deps.Heap,
		clock:            deps.Clock,
		board:            deps.Board,
		tasks:            tasks,
		memory:           memory,
		mutex:            utils.NewTimedMutex(),
		lockTimeout:      cfg.LockTimeout(),
		bootID:           uuid.New(),
		bootTime:         deps.Clock.NowMs(),
		initialized:      true,
		healthy:          true,
		healthyThreshold: cfg.HealthyThresholdBytes,
		freeMem:          deps.Heap.FreeBytes(),
		minFreeMem:       deps.Heap.MinFreeBytes(),
	}

	logger.Info("kernel initialized",
		slog.String("bootID", k.bootID.String()), slog.String("version", config.Version))
	return k, nil
}

// Tasks exposes the task registry for read-oriented consumers such as
// the shell.
func (k *Kernel) Tasks() *taskreg.Registry { return k.tasks }

// Memory exposes the memory tracker for read-oriented consumers.
func (k *Kernel) Memory() *memtrack.Tracker { return k.memory }

// BootID identifies this boot session.
func (k *Kernel) BootID() uuid.UUID { return k.bootID }

// Version reports the shim version string.
func (k *Kernel) Version() string { return config.Version }

// CreateTask registers and spawns a named task. totalTasks is bumped
// only on confirmed registry success, never optimistically.
func (k *Kernel) CreateTask(name string, fn hal.TaskFunc, stackSize int, arg any, priority int) error {
	if !k.mutex.TryAcquire(k.lockTimeout) {
		return hal.ErrLockTimeout
	}
	defer k.mutex.Release()

	if !k.initialized {
		return errors.New("kernel is not initialized")
	}
	if err := k.tasks.Create(name, fn, stackSize, arg, priority); err != nil {
		return err
	}
	k.totalTasks++
	return nil
}

// DeleteTask terminates a task and clears its record.
func (k *Kernel) DeleteTask(name string) error {
	if !k.mutex.TryAcquire(k.lockTimeout) {
		return hal.ErrLockTimeout
	}
	defer k.mutex.Release()

	if !k.initialized {
		return errors.New("kernel is not initialized")
	}
	if err := k.tasks.Delete(name); err != nil {
		return err
	}
	k.totalTasks--
	return nil
}

// SuspendTask pauses a named task.
func (k *Kernel) SuspendTask(name string) error {
	if !k.mutex.TryAcquire(k.lockTimeout) {
		return hal.ErrLockTimeout
	}
	defer k.mutex.Release()
	return k.tasks.Suspend(name)
}

// ResumeTask unpauses a named task.
func (k *Kernel) ResumeTask(name string) error {
	if !k.mutex.TryAcquire(k.lockTimeout) {
		return hal.ErrLockTimeout
	}
	defer k.mutex.Release()
	return k.tasks.Resume(name)
}

// ListTasks refreshes and reports the task table.
func (k *Kernel) ListTasks() ([]taskreg.TaskInfo, error) {
	if !k.mutex.TryAcquire(k.lockTimeout) {
		return nil, hal.ErrLockTimeout
	}
	defer k.mutex.Release()
	return k.tasks.List()
}

// Allocate requests tagged memory through the tracker.
func (k *Kernel) Allocate(size int, tag string) (hal.Pointer, error) {
	if !k.mutex.TryAcquire(k.lockTimeout) {
		return hal.NilPointer, hal.ErrLockTimeout
	}
	defer k.mutex.Release()
	return k.memory.Allocate(size, tag)
}

// Free releases tracked memory.
func (k *Kernel) Free(ptr hal.Pointer) error {
	if !k.mutex.TryAcquire(k.lockTimeout) {
		return hal.ErrLockTimeout
	}
	defer k.mutex.Release()
	return k.memory.Free(ptr)
}

// Reallocate resizes a tracked allocation; see memtrack.Tracker.Reallocate
// for the exact pointer-validity contract.
func (k *Kernel) Reallocate(ptr hal.Pointer, newSize int) (hal.Pointer, error) {
	if !k.mutex.TryAcquire(k.lockTimeout) {
		return hal.NilPointer, hal.ErrLockTimeout
	}
	defer k.mutex.Release()
	return k.memory.Reallocate(ptr, newSize)
}

// Shutdown tears down both registries. Live tasks are terminated and
// live allocations force-freed. The kernel cannot be used afterwards.
func (k *Kernel) Shutdown() {
	k.mutex.Acquire()
	defer k.mutex.Release()

	if !k.initialized {
		return
	}
	k.healthy = false
	k.initialized = false

	k.tasks.Shutdown()
	k.memory.Shutdown()
	k.totalTasks = 0

	k.logger.Info("kernel shut down", slog.String("bootID", k.bootID.String()))
}

// Reboot shuts the kernel down and asks the board for a restart.
func (k *Kernel) Reboot() {
	k.logger.Info("system reboot requested")
	k.Shutdown()
	if k.board != nil {
		k.board.Restart()
	}
}

// EnterLowPower delegates to the board's deep-sleep mode for the given
// duration.
func (k *Kernel) EnterLowPower(d time.Duration) {
	k.logger.Info("entering low power mode", slog.Duration("duration", d))
	if k.board != nil {
		k.board.DeepSleep(d)
	}
}
