package services

import "errors"

// Error kinds surfaced to the handlers. Anything that does not wrap one of
// these is treated as an internal failure.
var (
	ErrValidation         = errors.New("validation error")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrNoChanges          = errors.New("no changes")
)

// UserError is a failure whose Message is safe to show to the visitor.
type UserError struct {
	Message string
	kinds   []error
}

func newUserError(message string, kinds ...error) *UserError {
	return &UserError{Message: message, kinds: kinds}
}

func (e *UserError) Error() string { return e.Message }

// Unwrap lets errors.Is match any of the error's kinds.
func (e *UserError) Unwrap() []error { return e.kinds }

// UserMessage returns the visitor-facing message carried by err, if any.
func UserMessage(err error) (string, bool) {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Message, true
	}
	return "", false
}
