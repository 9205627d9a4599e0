package taskreg_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/embeddedos/oskit/hal"
	"github.com/embeddedos/oskit/hal/mocks"
	"github.com/embeddedos/oskit/hal/sim"
	"github.com/embeddedos/oskit/taskreg"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/goleak"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func idleTask(ctx context.Context, _ any) {
	<-ctx.Done()
}

func newRegistry(t *testing.T, opts taskreg.Options) (*taskreg.Registry, *sim.Scheduler) {
	t.Helper()
	sched := sim.NewScheduler(0)
	t.Cleanup(sched.Shutdown)

	reg, err := taskreg.New(discardLogger(), sched, opts)
	require.NoError(t, err)
	return reg, sched
}

func TestCreateValidatesArguments(t *testing.T) {
	reg, _ := newRegistry(t, taskreg.Options{})

	err := reg.Create("", idleTask, 2048, nil, 1)
	require.ErrorIs(t, err, taskreg.ErrInvalidArgument)

	err = reg.Create(strings.Repeat("x", taskreg.MaxNameLength+1), idleTask, 2048, nil, 1)
	require.ErrorIs(t, err, taskreg.ErrInvalidArgument)

	err = reg.Create("worker", nil, 2048, nil, 1)
	require.ErrorIs(t, err, taskreg.ErrInvalidArgument)

	err = reg.Create("worker", idleTask, 0, nil, 1)
	require.ErrorIs(t, err, taskreg.ErrInvalidArgument)
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	reg, _ := newRegistry(t, taskreg.Options{})

	require.NoError(t, reg.Create("worker", idleTask, 2048, nil, 1))

	err := reg.Create("worker", idleTask, 2048, nil, 5)
	require.ErrorIs(t, err, taskreg.ErrDuplicateName)

	count, err := reg.Count()
	require.NoError(t, err)
	require.Equal(t, 1, count)

	require.NoError(t, reg.Delete("worker"))
}

func TestSpawnFailureLeavesTableUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	sched := mocks.NewMockScheduler(ctrl)
	reg, err := taskreg.New(discardLogger(), sched, taskreg.Options{})
	require.NoError(t, err)

	sched.EXPECT().Spawn("refused", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(hal.NilTask, hal.ErrOutOfMemory)

	err = reg.Create("refused", idleTask, 2048, nil, 1)
	require.ErrorIs(t, err, taskreg.ErrSpawnFailed)

	count, err := reg.Count()
	require.NoError(t, err)
	require.Equal(t, 0, count)

	// The name stayed free; a retry that succeeds must be accepted.
	sched.EXPECT().Spawn("refused", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(hal.TaskHandle(1), nil)
	require.NoError(t, reg.Create("refused", idleTask, 2048, nil, 1))
}

func TestDeleteFreesNameAndSlot(t *testing.T) {
	reg, _ := newRegistry(t, taskreg.Options{Capacity: 1})

	require.NoError(t, reg.Create("only", idleTask, 2048, nil, 1))
	require.ErrorIs(t, reg.Create("other", idleTask, 2048, nil, 1), taskreg.ErrNoCapacity)

	require.NoError(t, reg.Delete("only"))
	require.NoError(t, reg.Create("only", idleTask, 2048, nil, 1))
	require.NoError(t, reg.Delete("only"))
}

func TestDeleteUnknownName(t *testing.T) {
	reg, _ := newRegistry(t, taskreg.Options{})
	require.ErrorIs(t, reg.Delete("ghost"), taskreg.ErrNotFound)
}

func TestCapacityExhaustionAndRecovery(t *testing.T) {
	reg, _ := newRegistry(t, taskreg.Options{Capacity: 3})

	names := []string{"a", "b", "c"}
	for _, name := range names {
		require.NoError(t, reg.Create(name, idleTask, 2048, nil, 1))
	}
	require.ErrorIs(t, reg.Create("d", idleTask, 2048, nil, 1), taskreg.ErrNoCapacity)

	require.NoError(t, reg.Delete("b"))
	require.NoError(t, reg.Create("d", idleTask, 2048, nil, 1))

	infos, err := reg.List()
	require.NoError(t, err)
	require.Len(t, infos, 3)
}

func TestSuspendResumeCachesState(t *testing.T) {
	reg, _ := newRegistry(t, taskreg.Options{})

	require.NoError(t, reg.Create("pausable", idleTask, 2048, nil, 1))

	require.NoError(t, reg.Suspend("pausable"))
	require.NoError(t, reg.Resume("pausable"))

	require.ErrorIs(t, reg.Suspend("ghost"), taskreg.ErrNotFound)
	require.ErrorIs(t, reg.Resume("ghost"), taskreg.ErrNotFound)

	require.NoError(t, reg.Delete("pausable"))
}

func TestListSortedByNameWithRefreshedState(t *testing.T) {
	ctrl := gomock.NewController(t)
	sched := mocks.NewMockScheduler(ctrl)
	reg, err := taskreg.New(discardLogger(), sched, taskreg.Options{})
	require.NoError(t, err)

	sched.EXPECT().Spawn(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(hal.TaskHandle(1), nil)
	sched.EXPECT().Spawn(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(hal.TaskHandle(2), nil)

	require.NoError(t, reg.Create("zeta", idleTask, 2048, nil, 1))
	require.NoError(t, reg.Create("alpha", idleTask, 4096, nil, 2))

	sched.EXPECT().QueryState(hal.TaskHandle(1)).Return(hal.TaskStateBlocked)
	sched.EXPECT().StackHighWaterMark(hal.TaskHandle(1)).Return(100)
	sched.EXPECT().QueryState(hal.TaskHandle(2)).Return(hal.TaskStateRunning)
	sched.EXPECT().StackHighWaterMark(hal.TaskHandle(2)).Return(200)

	infos, err := reg.List()
	require.NoError(t, err)
	require.Len(t, infos, 2)

	require.Equal(t, "alpha", infos[0].Name)
	require.Equal(t, hal.TaskStateRunning, infos[0].State)
	require.Equal(t, 200, infos[0].StackHighWater)

	require.Equal(t, "zeta", infos[1].Name)
	require.Equal(t, hal.TaskStateBlocked, infos[1].State)
	require.Equal(t, 100, infos[1].StackHighWater)
}

func TestTotalStackUsage(t *testing.T) {
	reg, _ := newRegistry(t, taskreg.Options{})

	require.NoError(t, reg.Create("small", idleTask, 1024, nil, 1))
	require.NoError(t, reg.Create("large", idleTask, 4096, nil, 1))

	total, err := reg.TotalStackUsage()
	require.NoError(t, err)
	require.Equal(t, 5120, total)

	require.NoError(t, reg.Delete("small"))
	require.NoError(t, reg.Delete("large"))
}

func TestShutdownTerminatesEverything(t *testing.T) {
	defer goleak.VerifyNone(t)

	sched := sim.NewScheduler(0)
	reg, err := taskreg.New(discardLogger(), sched, taskreg.Options{})
	require.NoError(t, err)

	for _, name := range []string{"one", "two", "three"} {
		require.NoError(t, reg.Create(name, idleTask, 2048, nil, 1))
	}

	reg.Shutdown()
	sched.Shutdown()

	count, err := reg.Count()
	require.NoError(t, err)
	require.Equal(t, 0, count)
}
