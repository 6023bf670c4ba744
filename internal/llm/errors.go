package llm

import (
	"errors"
	"fmt"
)

// StatusError reports a failed call to a provider. StatusCode is the HTTP
// status returned by the API, or 0 when the request never got a response.
type StatusError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *StatusError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: request failed: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s returned status %d: %v", e.Provider, e.StatusCode, e.Err)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// NewStatusError wraps err for provider
func NewStatusError(provider string, status int, err error) *StatusError {
	return &StatusError{Provider: provider, StatusCode: status, Err: err}
}

// StatusCode extracts the HTTP status from err, 0 if none is known
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
