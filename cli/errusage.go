package cli

import (
	"fmt"
)

// UsageError signals that a command was invoked incorrectly, so its usage should be shown to the user.
// Flag parsing failures are reported as a UsageError, and a [CommandFunc] may return one from its own validation.
type UsageError struct {
	wrapped error
}

// NewUsageError creates a [UsageError] from an error created with [fmt.Errorf], so "%w" may be used.
func NewUsageError(format string, args ...any) error {
	return &UsageError{wrapped: fmt.Errorf(format, args...)}
}

func (e *UsageError) Error() string {
	if e.wrapped == nil {
		return "usage error"
	}
	return "usage error: " + e.wrapped.Error()
}

// Is matches any other UsageError, so errors.Is(err, &UsageError{}) identifies usage errors.
func (e *UsageError) Is(target error) bool {
	_, ok := target.(*UsageError)
	return ok
}

func (e *UsageError) Unwrap() error {
	return e.wrapped
}
