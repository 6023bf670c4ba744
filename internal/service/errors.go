package service

import "errors"

var (
	// ErrInvalidInput marks caller mistakes; handlers map it to 400
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized is returned for a failed admin login
	ErrUnauthorized = errors.New("invalid credentials")
	// ErrAuthDisabled means no admin password hash is configured
	ErrAuthDisabled = errors.New("admin login disabled")
)

// InputError carries the client-facing reason for an ErrInvalidInput
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalidInput(msg string) error {
	return &InputError{Message: msg}
}
