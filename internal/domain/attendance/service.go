package attendance

import (
	"context"
)

// AttendanceService is the attendance reconciliation engine.
type AttendanceService interface {
	// GetTimeline returns one record per calendar day of the range, newest first, paginated
	GetTimeline(ctx context.Context, req TimelineRequest) (TimelineResponse, error)

	// GetTodayStatus reports today's check-in and leave state for an assignment
	GetTodayStatus(ctx context.Context, assignmentID string) (TodayStatusResponse, error)

	// AdminCheckIn creates or overwrites today's check-in with the current time
	AdminCheckIn(ctx context.Context, req AdminCheckInRequest) (AttendanceResponse, error)

	// AdminCheckOut closes an open row with the current time
	AdminCheckOut(ctx context.Context, req AdminCheckOutRequest) (AttendanceResponse, error)

	// MarkFullShift records today's attendance as the assignment's scheduled shift
	MarkFullShift(ctx context.Context, assignmentID string) (AttendanceResponse, error)

	// MarkAttendance upserts attendance for any date (manual backfill)
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)

	// UnmarkAttendance deletes a row created less than 24 hours ago
	UnmarkAttendance(ctx context.Context, req UnmarkAttendanceRequest) error
}
