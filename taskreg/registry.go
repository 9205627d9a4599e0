// Package taskreg layers a fixed-size table of named task records over
// an opaque preemptive scheduler. The registry does no scheduling of its
// own; it is a consistent, bounded view over tasks the external
// scheduler runs.
package taskreg

import (
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/embeddedos/oskit/hal"
	"github.com/embeddedos/oskit/internal/utils"
	"golang.org/x/exp/slices"
)

// MaxNameLength bounds task names. Overlong names are rejected rather
// than clipped, so two distinct long names can never collide after
// storage.
const MaxNameLength = 31

// wordSize converts a stack budget in bytes to the scheduler's
// stack-words unit.
const wordSize = 4

// Record is one slot in the task table. The cached State and
// StackHighWater fields are refreshed by List, not kept live.
type Record struct {
	Name           string
	Handle         hal.TaskHandle
	Priority       int
	StackSize      int
	State          hal.TaskState
	StackHighWater int
	Active         bool
}

// TaskInfo is one row of a task listing.
type TaskInfo struct {
	Name           string
	Priority       int
	StackSize      int
	State          hal.TaskState
	StackHighWater int
}

// Options configures a Registry. Zero fields fall back to the documented
// defaults.
type Options struct {
	// Capacity is the number of task slots (default 16).
	Capacity int
	// LockTimeout bounds every lock acquisition (default 1s).
	LockTimeout time.Duration
}

// Registry tracks named tasks. All operations are bounded-wait and fail
// with hal.ErrLockTimeout rather than blocking forever.
type Registry struct {
	logger *slog.Logger
	sched  hal.Scheduler

	mutex       *utils.TimedMutex
	lockTimeout time.Duration

	tasks  []Record
	byName *swiss.Map[string, int]
	count  int
}

// New creates a Registry over the given scheduler.
func New(logger *slog.Logger, sched hal.Scheduler, opts Options) (*Registry, error) {
	if sched == nil {
		return nil, errors.New("taskreg requires a scheduler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Capacity <= 0 {
		opts.Capacity = 16
	}
	if opts.LockTimeout <= 0 {
		opts.LockTimeout = time.Second
	}

	return &Registry{
		logger:      logger,
		sched:       sched,
		mutex:       utils.NewTimedMutex(),
		lockTimeout: opts.LockTimeout,
		tasks:       make([]Record, opts.Capacity),
		byName:      swiss.NewMap[string, int](uint32(opts.Capacity)),
	}, nil
}

// Capacity reports the number of task slots.
func (r *Registry) Capacity() int { return len(r.tasks) }

// Create registers and spawns a task. Arguments, name uniqueness and
// slot capacity are all checked before the external scheduler is asked
// to create anything, so a bookkeeping failure can never leak a live
// task.
func (r *Registry) Create(name string, fn hal.TaskFunc, stackSize int, arg any, priority int) error {
	if name == "" {
		return errors.Wrap(ErrInvalidArgument, "empty task name")
	}
	if len(name) > MaxNameLength {
		return errors.Wrapf(ErrInvalidArgument, "task name %q exceeds %d characters", name, MaxNameLength)
	}
	if fn == nil {
		return errors.Wrap(ErrInvalidArgument, "nil entry point")
	}
	if stackSize <= 0 {
		return errors.Wrapf(ErrInvalidArgument, "stack size %d", stackSize)
	}

	if !r.mutex.TryAcquire(r.lockTimeout) {
		return hal.ErrLockTimeout
	}
	defer r.mutex.Release()

	if _, exists := r.byName.Get(name); exists {
		r.logger.Warn("task already exists", slog.String("name", name))
		return errors.Wrapf(ErrDuplicateName, "%q", name)
	}

	slot := r.findFreeSlotLocked()
	if slot < 0 {
		r.logger.Warn("task table full", slog.Int("capacity", len(r.tasks)))
		return ErrNoCapacity
	}

	handle, err := r.sched.Spawn(name, fn, stackSize/wordSize, arg, priority)
	if err != nil {
		r.logger.Warn("scheduler refused task",
			slog.String("name", name), slog.String("cause", err.Error()))
		return errors.Wrapf(ErrSpawnFailed, "%q: %s", name, err)
	}

	r.tasks[slot] = Record{
		Name:      name,
		Handle:    handle,
		Priority:  priority,
		StackSize: stackSize,
		State:     hal.TaskStateReady,
		Active:    true,
	}
	r.byName.Put(name, slot)
	r.count++

	r.logger.Info("task created",
		slog.String("name", name), slog.Int("priority", priority), slog.Int("stackSize", stackSize))
	return nil
}

func (r *Registry) findFreeSlotLocked() int {
	for i := range r.tasks {
		if !r.tasks[i].Active {
			return i
		}
	}
	return -1
}

// Delete terminates a task abruptly and clears its slot. The name is
// reusable as soon as Delete returns.
func (r *Registry) Delete(name string) error {
	if !r.mutex.TryAcquire(r.lockTimeout) {
		return hal.ErrLockTimeout
	}
	defer r.mutex.Release()

	slot, ok := r.byName.Get(name)
	if !ok {
		return errors.Wrapf(ErrNotFound, "%q", name)
	}

	r.sched.Terminate(r.tasks[slot].Handle)
	r.byName.Delete(name)
	r.tasks[slot] = Record{}
	r.count--

	r.logger.Info("task deleted", slog.String("name", name))
	return nil
}

// Suspend pauses a task via the external scheduler and caches the
// Suspended state. It never creates or destroys a task.
func (r *Registry) Suspend(name string) error {
	return r.transition(name, hal.TaskStateSuspended)
}

// Resume unpauses a task and caches the Ready state.
func (r *Registry) Resume(name string) error {
	return r.transition(name, hal.TaskStateReady)
}

func (r *Registry) transition(name string, target hal.TaskState) error {
	if !r.mutex.TryAcquire(r.lockTimeout) {
		return hal.ErrLockTimeout
	}
	defer r.mutex.Release()

	slot, ok := r.byName.Get(name)
	if !ok {
		return errors.Wrapf(ErrNotFound, "%q", name)
	}

	switch target {
	case hal.TaskStateSuspended:
		r.sched.Suspend(r.tasks[slot].Handle)
	default:
		r.sched.Resume(r.tasks[slot].Handle)
	}
	r.tasks[slot].State = target
	return nil
}

// List refreshes the cached state and stack high-water mark of every
// active record from the scheduler, then reports the rows sorted by
// name. The cache is only as fresh as the most recent List call.
func (r *Registry) List() ([]TaskInfo, error) {
	if !r.mutex.TryAcquire(r.lockTimeout) {
		return nil, hal.ErrLockTimeout
	}
	defer r.mutex.Release()

	infos := make([]TaskInfo, 0, r.count)
	for i := range r.tasks {
		if !r.tasks[i].Active {
			continue
		}
		r.tasks[i].State = r.sched.QueryState(r.tasks[i].Handle)
		r.tasks[i].StackHighWater = r.sched.StackHighWaterMark(r.tasks[i].Handle)

		infos = append(infos, TaskInfo{
			Name:           r.tasks[i].Name,
			Priority:       r.tasks[i].Priority,
			StackSize:      r.tasks[i].StackSize,
			State:          r.tasks[i].State,
			StackHighWater: r.tasks[i].StackHighWater,
		})
	}

	slices.SortFunc(infos, func(a, b TaskInfo) bool {
		return a.Name < b.Name
	})
	return infos, nil
}

// Count reports the number of active records.
func (r *Registry) Count() (int, error) {
	if !r.mutex.TryAcquire(r.lockTimeout) {
		return 0, hal.ErrLockTimeout
	}
	defer r.mutex.Release()
	return r.count, nil
}

// TotalStackUsage sums the stack budgets of every active task.
func (r *Registry) TotalStackUsage() (int, error) {
	if !r.mutex.TryAcquire(r.lockTimeout) {
		return 0, hal.ErrLockTimeout
	}
	defer r.mutex.Release()

	total := 0
	for i := range r.tasks {
		if r.tasks[i].Active {
			total += r.tasks[i].StackSize
		}
	}
	return total, nil
}

// Shutdown terminates every active task and clears the table. It waits
// for the lock without a bound: teardown must run even under contention.
func (r *Registry) Shutdown() {
	r.mutex.Acquire()
	defer r.mutex.Release()

	for i := range r.tasks {
		if !r.tasks[i].Active {
			continue
		}
		r.sched.Terminate(r.tasks[i].Handle)
		r.byName.Delete(r.tasks[i].Name)
		r.tasks[i] = Record{}
	}
	r.count = 0
}
