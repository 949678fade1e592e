package attendance

import (
	"slices"
	"time"

	"github.com/homecare-staffing/nursing-backend-go/internal/domain/assignment"
	"github.com/homecare-staffing/nursing-backend-go/internal/domain/attendance"
	"github.com/homecare-staffing/nursing-backend-go/internal/domain/leave"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/utils"
)

// BuildTimeline emits exactly one record per calendar day in [from, to], in ascending order.
// rows are keyed by utils.DateKey. An empty slice is returned when to is before from.
func BuildTimeline(asg *assignment.Assignment, rows map[string]attendance.Attendance, leaves []leave.Interval, from, to time.Time) ([]attendance.DailyAttendance, error) {
	if asg == nil {
		return nil, assignment.ErrAssignmentNotFound
	}

	from, to = utils.DateOf(from), utils.DateOf(to)
	sortedLeaves := slices.Clone(leaves)
	slices.SortStableFunc(sortedLeaves, func(a, b leave.Interval) int {
		return a.StartDate.Compare(b.StartDate)
	})

	days := make([]attendance.DailyAttendance, 0, utils.DaysInRange(from, to))
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		var row *attendance.Attendance
		if r, ok := rows[utils.DateKey(d)]; ok {
			row = &r
		}
		days = append(days, buildDay(asg, row, leaveOn(sortedLeaves, d), d))
	}
	return days, nil
}

// leaveOn returns the first interval covering d; leaves must be sorted by start date.
func leaveOn(leaves []leave.Interval, d time.Time) *leave.Interval {
	for i := range leaves {
		if leaves[i].StartDate.After(d) {
			break
		}
		if leaves[i].Covers(d) {
			return &leaves[i]
		}
	}
	return nil
}

func buildDay(asg *assignment.Assignment, row *attendance.Attendance, overlap *leave.Interval, d time.Time) attendance.DailyAttendance {
	status := Classify(row, asg.ScheduledShiftStart, overlap)
	day := attendance.DailyAttendance{
		Date:         utils.DateKey(d),
		AssignmentID: asg.ID,
		Status:       status.Status,
		LeaveType:    status.LeaveType,
	}

	if row == nil {
		day.HoursWorked = formatMinutes(0).Display
		return day
	}

	worked := FormatDuration(row.TotalHours, row.StartTime, row.EndTime)
	day.AttendanceID = &row.ID
	day.HoursWorked = worked.Display
	day.WorkedMinutes = worked.Minutes
	day.Location = utils.DisplayLocation(row.Location)
	day.IsAdminAction = row.IsAdminAction
	if row.StartTime != nil {
		checkIn := row.StartTime.Format12h()
		day.CheckIn = &checkIn
	}
	if row.EndTime != nil {
		checkOut := row.EndTime.Format12h()
		day.CheckOut = &checkOut
	}
	return day
}

// Summarize counts statuses and worked time across days.
func Summarize(days []attendance.DailyAttendance) attendance.TimelineSummary {
	var summary attendance.TimelineSummary
	for _, day := range days {
		switch day.Status {
		case attendance.StatusPresent:
			summary.Present++
		case attendance.StatusLate:
			summary.Late++
		case attendance.StatusCheckedIn:
			summary.CheckedIn++
		case attendance.StatusOnLeave:
			summary.OnLeave++
		default:
			summary.Absent++
		}
		summary.TotalWorkedMinutes += day.WorkedMinutes
	}
	summary.TotalWorked = formatMinutes(summary.TotalWorkedMinutes).Display
	return summary
}
