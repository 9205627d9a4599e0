package sim

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/embeddedos/oskit/hal"
)

// stackGuardWords approximates the scheduler bookkeeping overhead charged
// against every task's stack budget when simulating the high-water mark.
const stackGuardWords = 16

type taskCtxKey struct{}

type simTask struct {
	sched      *Scheduler
	name       string
	stackWords int
	priority   int

	cancel context.CancelFunc
	done   chan struct{}

	// guarded by the scheduler mutex
	state     hal.TaskState
	suspended bool
	resumeCh  chan struct{}
	hwm       int
}

// Scheduler runs each task on its own goroutine. Suspension is a gate
// that tasks pass through at Yield points; termination cancels the task
// context. Run state is tracked at lifecycle transitions, so QueryState
// reflects the last transition, not instruction-level truth.
type Scheduler struct {
	mu       sync.Mutex
	next     hal.TaskHandle
	tasks    map[hal.TaskHandle]*simTask
	maxTasks int
}

var _ hal.Scheduler = (*Scheduler)(nil)

// NewScheduler creates a scheduler that refuses to spawn more than
// maxTasks live tasks. maxTasks <= 0 means unlimited.
func NewScheduler(maxTasks int) *Scheduler {
	return &Scheduler{
		tasks:    make(map[hal.TaskHandle]*simTask),
		maxTasks: maxTasks,
	}
}

func (s *Scheduler) Spawn(name string, fn hal.TaskFunc, stackWords int, arg any, priority int) (hal.TaskHandle, error) {
	if fn == nil {
		return hal.NilTask, errors.New("nil task entry point")
	}
	if stackWords <= stackGuardWords {
		return hal.NilTask, errors.Newf("stack budget of %d words is below the scheduler minimum", stackWords)
	}

	s.mu.Lock()
	if s.maxTasks > 0 && s.liveCountLocked() >= s.maxTasks {
		s.mu.Unlock()
		return hal.NilTask, errors.Newf("task budget of %d exhausted", s.maxTasks)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &simTask{
		sched:      s,
		name:       name,
		stackWords: stackWords,
		priority:   priority,
		cancel:     cancel,
		done:       make(chan struct{}),
		state:      hal.TaskStateReady,
		hwm:        stackWords - stackGuardWords,
	}

	s.next++
	handle := s.next
	s.tasks[handle] = t
	s.mu.Unlock()

	ctx = context.WithValue(ctx, taskCtxKey{}, t)

	go func() {
		defer close(t.done)

		s.mu.Lock()
		t.state = hal.TaskStateRunning
		s.mu.Unlock()

		fn(ctx, arg)

		s.mu.Lock()
		if t.state != hal.TaskStateUnknown {
			t.state = hal.TaskStateUnknown
		}
		s.mu.Unlock()
	}()

	return handle, nil
}

func (s *Scheduler) liveCountLocked() int {
	count := 0
	for _, t := range s.tasks {
		select {
		case <-t.done:
		default:
			count++
		}
	}
	return count
}

func (s *Scheduler) Terminate(handle hal.TaskHandle) {
	s.mu.Lock()
	t, ok := s.tasks[handle]
	if ok {
		delete(s.tasks, handle)
		t.state = hal.TaskStateUnknown
		if t.suspended {
			t.suspended = false
			close(t.resumeCh)
		}
	}
	s.mu.Unlock()

	if ok {
		t.cancel()
	}
}

func (s *Scheduler) Suspend(handle hal.TaskHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[handle]
	if !ok || t.suspended {
		return
	}
	t.suspended = true
	t.resumeCh = make(chan struct{})
	t.state = hal.TaskStateSuspended
}

func (s *Scheduler) Resume(handle hal.TaskHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[handle]
	if !ok || !t.suspended {
		return
	}
	t.suspended = false
	close(t.resumeCh)
	t.state = hal.TaskStateReady
}

func (s *Scheduler) QueryState(handle hal.TaskHandle) hal.TaskState {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[handle]
	if !ok {
		return hal.TaskStateUnknown
	}
	return t.state
}

func (s *Scheduler) StackHighWaterMark(handle hal.TaskHandle) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[handle]
	if !ok {
		return 0
	}
	return t.hwm
}

// Shutdown terminates every live task and waits for their goroutines to
// unwind.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	remaining := make([]*simTask, 0, len(s.tasks))
	for handle, t := range s.tasks {
		delete(s.tasks, handle)
		t.state = hal.TaskStateUnknown
		if t.suspended {
			t.suspended = false
			close(t.resumeCh)
		}
		remaining = append(remaining, t)
	}
	s.mu.Unlock()

	for _, t := range remaining {
		t.cancel()
		<-t.done
	}
}

// Yield is the cooperation point for simulated tasks. It blocks while the
// calling task is suspended and reports false once the task has been
// terminated. Task bodies should call it inside their work loop.
func Yield(ctx context.Context) bool {
	t, _ := ctx.Value(taskCtxKey{}).(*simTask)
	if t == nil {
		return ctx.Err() == nil
	}

	for {
		select {
		case <-ctx.Done():
			return false
		default:
		}

		t.sched.mu.Lock()
		if !t.suspended {
			if t.state == hal.TaskStateSuspended {
				t.state = hal.TaskStateRunning
			}
			t.sched.mu.Unlock()
			return true
		}
		resume := t.resumeCh
		t.sched.mu.Unlock()

		select {
		case <-ctx.Done():
			return false
		case <-resume:
		}
	}
}
