package workflow

import "errors"

// Typed failure taxonomy for the workflow core. Every caller-facing failure
// is one of these sentinels (possibly wrapped with context), so layers above
// can branch with errors.Is instead of string matching.
//
// ErrConcurrencyConflict is the only one that is safe to retry: it signals a
// lost race on a guarded status update, not a logic violation.

var (
	ErrUnauthenticated     = errors.New("actor could not be resolved")
	ErrForbidden           = errors.New("actor is not permitted to perform this transition")
	ErrIllegalTransition   = errors.New("no transition from the current status for this event")
	ErrIncompleteTasks     = errors.New("work order has tasks that are not completed")
	ErrMissingClient       = errors.New("quote has no linked request to resolve a billing client")
	ErrConcurrencyConflict = errors.New("entity status changed concurrently")
)
