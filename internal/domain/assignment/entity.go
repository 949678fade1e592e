package assignment

import (
	"time"

	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/utils"
)

// Assignment is a nurse's contracted service period with one client.
type Assignment struct {
	ID                  string
	NurseID             string
	ClientID            string
	StartDate           time.Time
	EndDate             *time.Time // nil = open-ended
	ScheduledShiftStart *utils.TimeOfDay
	ScheduledShiftEnd   *utils.TimeOfDay
	SalaryPerDay        *float64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// HasScheduledShift reports whether both ends of the shift window are known.
func (a Assignment) HasScheduledShift() bool {
	return a.ScheduledShiftStart != nil && a.ScheduledShiftEnd != nil
}

// Covers reports whether date falls inside the assignment period.
func (a Assignment) Covers(date time.Time) bool {
	date = utils.DateOf(date)
	if date.Before(utils.DateOf(a.StartDate)) {
		return false
	}
	return a.EndDate == nil || !date.After(utils.DateOf(*a.EndDate))
}

// DefaultRange is [StartDate, min(today, EndDate)]. The end may precede the
// start for assignments that have not begun yet.
func (a Assignment) DefaultRange(today time.Time) (time.Time, time.Time) {
	from := utils.DateOf(a.StartDate)
	to := utils.DateOf(today)
	if a.EndDate != nil {
		to = utils.MinDate(to, utils.DateOf(*a.EndDate))
	}
	return from, to
}
