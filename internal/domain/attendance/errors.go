package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")

	// ErrInvalidState covers transitions the row's current state does not allow
	ErrInvalidState     = errors.New("invalid attendance state")
	ErrNotCheckedIn     = fmt.Errorf("%w: attendance has no check-in time", ErrInvalidState)
	ErrNoScheduledShift = fmt.Errorf("%w: assignment has no scheduled shift", ErrInvalidState)

	ErrUnmarkWindowExpired = errors.New("attendance can no longer be unmarked: more than 24 hours since it was created")
)
