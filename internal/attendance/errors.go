package attendance

import "errors"

var (
	// ErrAlreadyClockedIn is returned when a student with an open record clocks in again.
	ErrAlreadyClockedIn = errors.New("already clocked in")
	// ErrNotClockedIn is returned when a student without an open record clocks out.
	ErrNotClockedIn = errors.New("not clocked in")
)

// ValidationError reports a missing required field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}
