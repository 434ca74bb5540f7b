package psystem

import "errors"

// Domain errors (spec.md §7): fatal for the firing or the parse that
// produced it.
var (
	ErrMoveNotImplemented = errors.New("psystem: move code not implemented by this core")
	ErrPriorityWithoutID  = errors.New("psystem: rule has priority but no id")
	ErrUnhandledDMEMMove  = errors.New("psystem: unhandled move inside DMEM right-hand side")
)

// Structural errors: a rule references a membrane that does not exist
// where it is required to.
var (
	ErrDestinationNotChild = errors.New("psystem: apply_in destination is not a child of this membrane")
	ErrMoveTargetNotFound  = errors.New("psystem: apply_move_mem destination does not exist")
	// ErrInsufficientObjects is returned when a firing is re-validated at
	// apply time (spec.md §7 best-effort sequential policy) and the
	// membrane no longer holds enough reactants; the caller turns this
	// into a "NOT Applied" trace line rather than a fatal error.
	ErrInsufficientObjects = errors.New("psystem: insufficient objects to apply rule left-hand side")
)
