package region

import "errors"

var (
	// ErrForeignVariable is returned when an intersection names a variable
	// that is not a member of the region. It is a construction-time
	// configuration error.
	ErrForeignVariable = errors.New("region: intersection variable not in region")

	// ErrDuplicateVariable indicates a member list or intersection that
	// repeats a variable.
	ErrDuplicateVariable = errors.New("region: duplicate variable")

	// ErrUnknownVariable indicates a variable index outside the model.
	ErrUnknownVariable = errors.New("region: unknown variable")

	// ErrSelfIntersection indicates an attempt to share the region's own
	// principal intersection with itself.
	ErrSelfIntersection = errors.New("region: principal intersection cannot be shared")

	// ErrAlreadyShared indicates an intersection that the region already shares.
	ErrAlreadyShared = errors.New("region: intersection already shared")

	// ErrUnknownHandle indicates an intersection handle outside the belief arena.
	ErrUnknownHandle = errors.New("region: intersection handle outside belief arena")
)
