package application

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrNoEligibleDates is returned when a recurrence pattern produces no
	// occurrences inside its date range.
	ErrNoEligibleDates = errors.New("application: no eligible dates")
	// ErrPastDatetime is returned when a submission would place a session
	// before the current moment.
	ErrPastDatetime = errors.New("application: session starts in the past")
	// ErrPolicyCapExceeded is returned when a series would extend beyond
	// December 31 of the current year.
	ErrPolicyCapExceeded = errors.New("application: end date exceeds scheduling horizon")
	// ErrPersistence wraps storage failures surfaced to callers.
	ErrPersistence = errors.New("application: persistence failure")
)

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// ConflictError reports the clashes that blocked a submission. The batch is
// rejected as a whole; nothing was stored.
type ConflictError struct {
	Conflicts []ConflictRecord
}

// Error implements the error interface.
func (c *ConflictError) Error() string {
	if c == nil {
		return ""
	}
	return "scheduling conflict detected"
}
