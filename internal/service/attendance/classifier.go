package attendance

import (
	"github.com/homecare-staffing/nursing-backend-go/internal/domain/attendance"
	"github.com/homecare-staffing/nursing-backend-go/internal/domain/leave"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/utils"
)

// Classify derives one day's status. Rules are checked in order and the first match wins:
// leave without a row, no row, no check-in, late beyond the grace period,
// checked out, still checked in.
func Classify(row *attendance.Attendance, scheduledStart *utils.TimeOfDay, leaveOverlap *leave.Interval) attendance.DayStatus {
	if row == nil {
		if leaveOverlap != nil {
			leaveType := leaveOverlap.LeaveType
			return attendance.DayStatus{Status: attendance.StatusOnLeave, LeaveType: &leaveType}
		}
		return attendance.DayStatus{Status: attendance.StatusAbsent}
	}

	// A placeholder row without a check-in counts as absent
	if row.StartTime == nil {
		return attendance.DayStatus{Status: attendance.StatusAbsent}
	}

	// Grace period is inclusive
	if scheduledStart != nil && row.StartTime.Sub(*scheduledStart) > attendance.GracePeriod {
		return attendance.DayStatus{Status: attendance.StatusLate}
	}

	if row.EndTime != nil {
		return attendance.DayStatus{Status: attendance.StatusPresent}
	}
	return attendance.DayStatus{Status: attendance.StatusCheckedIn}
}
