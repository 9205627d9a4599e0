package memtrack

import "github.com/cockroachdb/errors"

var (
	// ErrNoCapacity is returned when every tracking slot is occupied. The
	// underlying heap is not touched in that case.
	ErrNoCapacity = errors.New("no free allocation record slots")

	// ErrNoMemory is returned when the external heap refuses the request.
	ErrNoMemory = errors.New("heap allocation failed")

	// ErrNotFound is returned by Reallocate for a pointer the table has
	// no record of.
	ErrNotFound = errors.New("allocation record not found")

	// ErrUntrackedPointer is returned by Free for a pointer the table
	// never recorded. It is a defensive report, not a crash trigger: the
	// tracker leaves every other record untouched.
	ErrUntrackedPointer = errors.New("free of untracked pointer")

	// ErrInvalidSize rejects non-positive allocation sizes.
	ErrInvalidSize = errors.New("allocation size must be positive")
)
