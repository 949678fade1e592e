package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/homecare-staffing/nursing-backend-go/internal/domain/assignment"
	"github.com/homecare-staffing/nursing-backend-go/internal/domain/attendance"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/database"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/lock"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/utils"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/validator"
)

// AdminCheckIn implements attendance.AttendanceService.
// A second check-in on the same day reopens the existing row: the start time is
// overwritten and any earlier check-out is cleared.
func (a *AttendanceServiceImpl) AdminCheckIn(ctx context.Context, req attendance.AdminCheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	asg, err := a.getAssignment(ctx, req.AssignmentID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.now().In(a.location)
	today := utils.DateOf(now)
	if err := requireActive(asg, today); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var saved attendance.Attendance
	err = a.withDayLock(ctx, asg.ID, today, func(ctx context.Context) error {
		row, err := a.dayRow(ctx, asg.ID, today)
		if err != nil {
			return err
		}

		start := utils.TimeOfDayOf(now)
		row.StartTime = &start
		row.EndTime = nil
		row.TotalHours = nil
		row.IsAdminAction = true
		if loc := attendance.NormalizeLocation(req.Location); loc != nil {
			row.Location = loc
		}

		saved, err = a.upsert(ctx, row)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Admin check-in recorded", "assignment_id", asg.ID, "attendance_id", saved.ID, "date", utils.DateKey(today))
	return mapAttendanceToResponse(saved), nil
}

// AdminCheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) AdminCheckOut(ctx context.Context, req attendance.AdminCheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	row, err := a.getAttendance(ctx, req.AttendanceID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var saved attendance.Attendance
	err = a.withDayLock(ctx, row.AssignmentID, row.Date, func(ctx context.Context) error {
		// Re-read under the lock; the row may have changed or been unmarked meanwhile
		current, err := a.getAttendance(ctx, row.ID)
		if err != nil {
			return err
		}
		if current.StartTime == nil {
			return attendance.ErrNotCheckedIn
		}

		now := a.now().In(a.location)
		worked := now.Sub(current.StartTime.On(current.Date, a.location))
		if worked < 0 {
			return validator.Single("check_out", "check-out time is before the check-in time")
		}

		end := utils.TimeOfDayOf(now)
		total := utils.MinutesToHHMM(int(worked / time.Minute))
		current.EndTime = &end
		current.TotalHours = &total
		current.IsAdminAction = true
		if loc := attendance.NormalizeLocation(req.Location); loc != nil {
			current.Location = loc
		}

		saved, err = a.upsert(ctx, current)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Admin check-out recorded", "assignment_id", saved.AssignmentID, "attendance_id", saved.ID, "date", utils.DateKey(saved.Date))
	return mapAttendanceToResponse(saved), nil
}

// MarkFullShift implements attendance.AttendanceService.
// The scheduled span wraps past midnight when the shift ends before it starts.
func (a *AttendanceServiceImpl) MarkFullShift(ctx context.Context, assignmentID string) (attendance.AttendanceResponse, error) {
	if !validator.IsValidUUID(assignmentID) {
		return attendance.AttendanceResponse{}, validator.Single("assignment_id", "assignment_id must be a valid UUID")
	}

	asg, err := a.getAssignment(ctx, assignmentID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !asg.HasScheduledShift() {
		return attendance.AttendanceResponse{}, attendance.ErrNoScheduledShift
	}

	today := a.today()
	if err := requireActive(asg, today); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	start, end := *asg.ScheduledShiftStart, *asg.ScheduledShiftEnd
	total := utils.MinutesToHHMM(int(utils.SpanWrapped(start, end) / time.Minute))

	var saved attendance.Attendance
	err = a.withDayLock(ctx, asg.ID, today, func(ctx context.Context) error {
		row, err := a.dayRow(ctx, asg.ID, today)
		if err != nil {
			return err
		}

		row.StartTime = &start
		row.EndTime = &end
		row.TotalHours = &total
		row.IsAdminAction = true

		saved, err = a.upsert(ctx, row)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Full shift marked", "assignment_id", asg.ID, "attendance_id", saved.ID, "date", utils.DateKey(today), "total_hours", total)
	return mapAttendanceToResponse(saved), nil
}

// MarkAttendance implements attendance.AttendanceService.
// Nothing is written unless the whole request is valid.
func (a *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	asg, err := a.getAssignment(ctx, req.AssignmentID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, checkIn, checkOut := req.Values()
	if err := requireActive(asg, date); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if date.After(a.today()) {
		return attendance.AttendanceResponse{}, validator.Single("date", "date must not be in the future")
	}

	var total *string
	if checkOut != nil {
		hhmm := utils.MinutesToHHMM(int(checkOut.Sub(checkIn) / time.Minute))
		total = &hhmm
	}

	var saved attendance.Attendance
	err = a.withDayLock(ctx, asg.ID, date, func(ctx context.Context) error {
		row, err := a.dayRow(ctx, asg.ID, date)
		if err != nil {
			return err
		}

		row.StartTime = &checkIn
		row.EndTime = checkOut
		row.TotalHours = total
		row.IsAdminAction = req.IsAdminAction
		if loc := attendance.NormalizeLocation(req.Location); loc != nil {
			row.Location = loc
		}

		saved, err = a.upsert(ctx, row)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Attendance marked", "assignment_id", asg.ID, "attendance_id", saved.ID, "date", req.Date, "is_admin_action", req.IsAdminAction)
	return mapAttendanceToResponse(saved), nil
}

// UnmarkAttendance implements attendance.AttendanceService.
// Rows older than attendance.UnmarkWindow are left untouched.
func (a *AttendanceServiceImpl) UnmarkAttendance(ctx context.Context, req attendance.UnmarkAttendanceRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	var row attendance.Attendance
	if req.AttendanceID != nil {
		found, err := a.getAttendance(ctx, *req.AttendanceID)
		if err != nil {
			return err
		}
		row = found
	} else {
		date, _ := validator.IsValidDate(*req.Date)
		found, err := a.findDay(ctx, *req.AssignmentID, date)
		if err != nil {
			return err
		}
		if found == nil {
			return attendance.ErrAttendanceNotFound
		}
		row = *found
	}

	err := a.withDayLock(ctx, row.AssignmentID, row.Date, func(ctx context.Context) error {
		current, err := a.getAttendance(ctx, row.ID)
		if err != nil {
			return err
		}
		if a.now().Sub(current.CreatedAt) > attendance.UnmarkWindow {
			return attendance.ErrUnmarkWindowExpired
		}

		rctx, cancel := a.repoContext(ctx)
		defer cancel()
		return repositoryError("failed to delete attendance", a.AttendanceRepository.Delete(rctx, current.ID))
	})
	if err != nil {
		return err
	}

	slog.Info("Attendance unmarked", "assignment_id", row.AssignmentID, "attendance_id", row.ID, "date", utils.DateKey(row.Date))
	return nil
}

// withDayLock runs fn while holding the write lock of (assignmentID, date).
func (a *AttendanceServiceImpl) withDayLock(ctx context.Context, assignmentID string, date time.Time, fn func(ctx context.Context) error) error {
	key := assignmentID + ":" + utils.DateKey(date)

	lockCtx, cancel := context.WithTimeout(ctx, a.lockWaitTimeout)
	unlock, err := a.locker.Lock(lockCtx, key)
	cancel()
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return fmt.Errorf("attendance %s is being modified: %w: %w", key, database.ErrConflict, err)
		}
		return fmt.Errorf("failed to lock attendance %s: %w", key, err)
	}
	defer unlock()

	return fn(ctx)
}

// dayRow returns the existing row of the day, or a fresh one ready to insert.
func (a *AttendanceServiceImpl) dayRow(ctx context.Context, assignmentID string, date time.Time) (attendance.Attendance, error) {
	existing, err := a.findDay(ctx, assignmentID, date)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if existing != nil {
		return *existing, nil
	}
	return attendance.Attendance{AssignmentID: assignmentID, Date: utils.DateOf(date)}, nil
}

func (a *AttendanceServiceImpl) upsert(ctx context.Context, row attendance.Attendance) (attendance.Attendance, error) {
	rctx, cancel := a.repoContext(ctx)
	defer cancel()

	saved, err := a.AttendanceRepository.Upsert(rctx, row)
	if err != nil {
		slog.Error("Failed to save attendance", "assignment_id", row.AssignmentID, "date", utils.DateKey(row.Date), "error", err)
		return attendance.Attendance{}, repositoryError("failed to save attendance", err)
	}
	return saved, nil
}

func requireActive(asg assignment.Assignment, date time.Time) error {
	if !asg.Covers(date) {
		return validator.Single("date", fmt.Sprintf("assignment is not active on %s", utils.DateKey(date)))
	}
	return nil
}
