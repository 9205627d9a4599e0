package taskreg

import "github.com/cockroachdb/errors"

var (
	// ErrNoCapacity is returned when every task slot is occupied. The
	// external scheduler is not asked to create anything in that case.
	ErrNoCapacity = errors.New("no free task slots")

	// ErrDuplicateName is returned when a task with the same name is
	// already active. Names become reusable the instant their slot clears.
	ErrDuplicateName = errors.New("task name already active")

	// ErrNotFound is returned for operations on a name with no active
	// record.
	ErrNotFound = errors.New("task not found")

	// ErrInvalidArgument rejects empty names, overlong names and nil
	// entry points before anything else is checked.
	ErrInvalidArgument = errors.New("invalid task argument")

	// ErrSpawnFailed wraps an external scheduler refusal. The table is
	// left untouched when it occurs.
	ErrSpawnFailed = errors.New("scheduler failed to create task")
)
