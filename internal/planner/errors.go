package planner

import "fmt"

// The planner's failure taxonomy. Validation and not-found errors are
// recoverable: the API surfaces them as user-visible messages and no
// partial state change occurs. Store errors are logged at the call site
// and surface as a generic failure; no automatic retry exists.

// ValidationError reports a mutation that references an entity outside
// the acting household's scope or omits a required field.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an operation targeting an identifier that is no
// longer present, e.g. deleted by the other household member.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// StoreError wraps a persistence failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure in %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
