package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance rows.
// Storage keeps at most one row per (assignment_id, date).
type AttendanceRepository interface {
	// GetByID returns ErrAttendanceNotFound when the row does not exist
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByAssignmentAndDate returns nil, nil when no row exists for that day
	GetByAssignmentAndDate(ctx context.Context, assignmentID string, date time.Time) (*Attendance, error)

	// ListByAssignment returns all rows in [from, to] keyed by YYYY-MM-DD
	ListByAssignment(ctx context.Context, assignmentID string, from, to time.Time) (map[string]Attendance, error)

	// Upsert inserts the row or, if one already exists for (assignment_id, date),
	// overwrites its mutable fields. CreatedAt of an existing row is preserved.
	Upsert(ctx context.Context, attendance Attendance) (Attendance, error)

	// Delete hard-deletes a row; ErrAttendanceNotFound when it is already gone
	Delete(ctx context.Context, id string) error
}
