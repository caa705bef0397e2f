package wizard

import "errors"

var (
	// ErrSessionClosed is returned when an event reaches a completed or
	// cancelled session.
	ErrSessionClosed = errors.New("wizard: session completed or cancelled")
	// ErrStepOutOfOrder is returned when a result is applied at the wrong step.
	ErrStepOutOfOrder = errors.New("wizard: step out of order")
	// ErrMissingPriorStep is returned when a prior step's data is absent.
	ErrMissingPriorStep = errors.New("wizard: missing prior step data")
	// ErrSessionNotFound indicates an unknown session id.
	ErrSessionNotFound = errors.New("wizard: session not found")
	// ErrUnexpectedInput is returned when a Next event carries the wrong
	// step's form.
	ErrUnexpectedInput = errors.New("wizard: input does not match current step")
)

// ValidationError is a recoverable required-field or range failure. It is
// shown on the same step and mutates no state.
type ValidationError struct {
	Message string
}

// Error implements error.
func (e *ValidationError) Error() string {
	return "wizard: validation: " + e.Message
}

// NewValidationError builds a validation failure.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ResolutionError means a referenced entity (project, pairing target) could
// not be resolved to an identifier. Recoverable like a validation failure.
type ResolutionError struct {
	Message string
}

// Error implements error.
func (e *ResolutionError) Error() string {
	return "wizard: resolution: " + e.Message
}

// NewResolutionError builds a resolution failure.
func NewResolutionError(message string) *ResolutionError {
	return &ResolutionError{Message: message}
}

// IsRecoverable reports whether err is a validation or resolution failure
// rather than a repository fault.
func IsRecoverable(err error) bool {
	var ve *ValidationError
	var re *ResolutionError
	return errors.As(err, &ve) || errors.As(err, &re)
}
