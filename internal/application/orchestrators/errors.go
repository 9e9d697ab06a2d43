package orchestrators

import "errors"

// ValidationError marks a mutation the domain rejected before any write
// was attempted. It unwraps to the underlying domain error so callers
// can still test sentinels with errors.Is. Any other error returned by
// a mutating orchestrator came out of a store operation.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

// invalid wraps a domain validation failure.
func invalid(err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Err: err}
}

// IsValidation reports whether err is a validation rejection rather
// than a store failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
