package attendance

import (
	"time"

	"github.com/homecare-staffing/nursing-backend-go/internal/domain/leave"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/utils"
)

// Attendance is one persisted check-in/out record for an assignment on a calendar date.
// At most one exists per (AssignmentID, Date).
type Attendance struct {
	ID            string
	AssignmentID  string
	Date          time.Time
	StartTime     *utils.TimeOfDay
	EndTime       *utils.TimeOfDay
	TotalHours    *string // "H:MM" or decimal hours
	IsAdminAction bool
	Location      *string // free text or JSON coordinate pair
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Status is the classification of one day in a timeline.
type Status string

const (
	StatusAbsent    Status = "absent"
	StatusPresent   Status = "present"
	StatusLate      Status = "late"
	StatusCheckedIn Status = "checked_in"
	StatusOnLeave   Status = "on_leave"
)

// DayStatus is a Status plus the leave type when the status is StatusOnLeave.
type DayStatus struct {
	Status    Status
	LeaveType *leave.Type
}

const (
	// GracePeriod is how late a check-in may be before the day counts as late (inclusive).
	GracePeriod = 15 * time.Minute

	// UnmarkWindow is how long after creation a row may still be deleted.
	UnmarkWindow = 24 * time.Hour
)

// WorkedDuration is the hours-worked value of one day with its display text.
type WorkedDuration struct {
	Minutes int
	Display string
}
