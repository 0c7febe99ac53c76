package repository

import "errors"

// Sentinel errors surfaced by repositories and the atomic store
// operations built on them. Callers match with errors.Is.
var (
	// ErrNotFound: no entity with the given id.
	ErrNotFound = errors.New("not found")

	// ErrConflict: an invariant would be violated, e.g. starting a
	// second timer while one is active or placing overlapping tasks.
	ErrConflict = errors.New("conflict")

	// ErrPrecondition: the operation is refused in the current state,
	// e.g. completing a reading that is already completed.
	ErrPrecondition = errors.New("precondition failed")

	// ErrUnavailable: the store is unreachable. Background loops back
	// off and retry; request handlers fail fast.
	ErrUnavailable = errors.New("store unavailable")
)
