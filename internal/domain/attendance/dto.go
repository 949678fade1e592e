package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/homecare-staffing/nursing-backend-go/internal/domain/leave"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/utils"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/validator"
)

// ========================================
// TIMELINE DTOs
// ========================================

// MaxTimelineDays caps how many calendar days one timeline request may cover.
const MaxTimelineDays = 366

type TimelineRequest struct {
	AssignmentID string  `json:"-"`
	StartDate    *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate      *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (r *TimelineRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.AssignmentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "assignment_id",
			Message: "assignment_id must be a valid UUID",
		})
	}

	if r.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if r.Page == 0 {
		r.Page = 1 // Default page
	}

	if r.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if r.Limit == 0 {
		r.Limit = 20 // Default limit
	}
	if r.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	var start, end time.Time
	var startOK, endOK bool
	if r.StartDate != nil && *r.StartDate != "" {
		if start, startOK = validator.IsValidDate(*r.StartDate); !startOK {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if r.EndDate != nil && *r.EndDate != "" {
		if end, endOK = validator.IsValidDate(*r.EndDate); !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	} else if startOK && endOK && ExceedsTimelineSpan(start, end) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: fmt.Sprintf("date range must not exceed %d days", MaxTimelineDays),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ExceedsTimelineSpan reports whether [from, to] covers more than MaxTimelineDays days.
func ExceedsTimelineSpan(from, to time.Time) bool {
	return to.After(from.AddDate(0, 0, MaxTimelineDays-1))
}

// Range returns the explicitly requested bounds; nil means "use the default".
// Call after Validate.
func (r *TimelineRequest) Range() (from, to *time.Time) {
	if r.StartDate != nil && *r.StartDate != "" {
		if d, ok := validator.IsValidDate(*r.StartDate); ok {
			from = &d
		}
	}
	if r.EndDate != nil && *r.EndDate != "" {
		if d, ok := validator.IsValidDate(*r.EndDate); ok {
			to = &d
		}
	}
	return from, to
}

// DailyAttendance is the derived attendance of one calendar day. Never persisted.
type DailyAttendance struct {
	Date          string      `json:"date"`
	AssignmentID  string      `json:"assignment_id"`
	AttendanceID  *string     `json:"attendance_id,omitempty"`
	CheckIn       *string     `json:"check_in,omitempty"`  // 12h display
	CheckOut      *string     `json:"check_out,omitempty"` // 12h display
	HoursWorked   string      `json:"hours_worked"`
	WorkedMinutes int         `json:"worked_minutes"`
	Status        Status      `json:"status"`
	LeaveType     *leave.Type `json:"leave_type,omitempty"`
	Location      *string     `json:"location,omitempty"`
	IsAdminAction bool        `json:"is_admin_action"`
}

type TimelineSummary struct {
	Present            int    `json:"present"`
	Late               int    `json:"late"`
	CheckedIn          int    `json:"checked_in"`
	Absent             int    `json:"absent"`
	OnLeave            int    `json:"on_leave"`
	TotalWorkedMinutes int    `json:"total_worked_minutes"`
	TotalWorked        string `json:"total_worked"`
}

type TimelineResponse struct {
	AssignmentID string            `json:"assignment_id"`
	StartDate    string            `json:"start_date"`
	EndDate      string            `json:"end_date"`
	TotalCount   int64             `json:"total_count"`
	Page         int               `json:"page"`
	Limit        int               `json:"limit"`
	TotalPages   int               `json:"total_pages"`
	Showing      string            `json:"showing"`
	Summary      TimelineSummary   `json:"summary"`
	Records      []DailyAttendance `json:"records"`
}

// ========================================
// TODAY STATUS DTOs
// ========================================

type TodayStatusResponse struct {
	Date         string      `json:"date"`
	AttendanceID *string     `json:"attendance_id,omitempty"`
	CheckedIn    bool        `json:"checked_in"`
	CheckInTime  *string     `json:"check_in_time,omitempty"`
	CheckOutTime *string     `json:"check_out_time,omitempty"`
	TotalHours   *string     `json:"total_hours,omitempty"`
	OnLeave      bool        `json:"on_leave"`
	LeaveType    *leave.Type `json:"leave_type,omitempty"`
}

// ========================================
// ADMIN ACTION DTOs
// ========================================

type AdminCheckInRequest struct {
	AssignmentID string  `json:"-"`
	Location     *string `json:"location,omitempty"`
}

func (r *AdminCheckInRequest) Validate() error {
	if !validator.IsValidUUID(r.AssignmentID) {
		return validator.Single("assignment_id", "assignment_id must be a valid UUID")
	}
	return nil
}

type AdminCheckOutRequest struct {
	AttendanceID string  `json:"-"`
	Location     *string `json:"location,omitempty"`
}

func (r *AdminCheckOutRequest) Validate() error {
	if !validator.IsValidUUID(r.AttendanceID) {
		return validator.Single("attendance_id", "attendance_id must be a valid UUID")
	}
	return nil
}

// MarkAttendanceRequest is the manual/admin backfill of one day
type MarkAttendanceRequest struct {
	AssignmentID  string  `json:"-"`
	Date          string  `json:"date"`                // YYYY-MM-DD
	CheckIn       string  `json:"check_in"`            // HH:MM, HH:MM:SS or hh:mm AM
	CheckOut      *string `json:"check_out,omitempty"` // same formats
	IsAdminAction bool    `json:"is_admin_action"`
	Location      *string `json:"location,omitempty"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.AssignmentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "assignment_id",
			Message: "assignment_id must be a valid UUID",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	checkIn, checkInOK := validator.IsValidTimeOfDay(r.CheckIn)
	if validator.IsEmpty(r.CheckIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "check_in is required",
		})
	} else if !checkInOK {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "check_in must be a time of day like 09:00 or 09:00 AM",
		})
	}

	if r.CheckOut != nil && !validator.IsEmpty(*r.CheckOut) {
		checkOut, ok := validator.IsValidTimeOfDay(*r.CheckOut)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be a time of day like 17:00 or 05:00 PM",
			})
		} else if checkInOK && checkOut < checkIn {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must not be before check_in",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Values returns the parsed date and times. Call after Validate.
func (r *MarkAttendanceRequest) Values() (date time.Time, checkIn utils.TimeOfDay, checkOut *utils.TimeOfDay) {
	date, _ = validator.IsValidDate(r.Date)
	checkIn, _ = validator.IsValidTimeOfDay(r.CheckIn)
	if r.CheckOut != nil && !validator.IsEmpty(*r.CheckOut) {
		if out, ok := validator.IsValidTimeOfDay(*r.CheckOut); ok {
			checkOut = &out
		}
	}
	return date, checkIn, checkOut
}

// UnmarkAttendanceRequest identifies the row either by id or by (assignment, date)
type UnmarkAttendanceRequest struct {
	AttendanceID *string `json:"attendance_id,omitempty"`
	AssignmentID *string `json:"assignment_id,omitempty"`
	Date         *string `json:"date,omitempty"` // YYYY-MM-DD
}

func (r *UnmarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.AttendanceID != nil {
		if !validator.IsValidUUID(*r.AttendanceID) {
			errs = append(errs, validator.ValidationError{
				Field:   "attendance_id",
				Message: "attendance_id must be a valid UUID",
			})
		}
		if len(errs) > 0 {
			return errs
		}
		return nil
	}

	if r.AssignmentID == nil || !validator.IsValidUUID(*r.AssignmentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "assignment_id",
			Message: "assignment_id must be a valid UUID when attendance_id is not given",
		})
	}
	if r.Date == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required when attendance_id is not given",
		})
	} else if _, ok := validator.IsValidDate(*r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID            string  `json:"id"`
	AssignmentID  string  `json:"assignment_id"`
	Date          string  `json:"date"`
	CheckInTime   *string `json:"check_in_time,omitempty"`  // 24h
	CheckOutTime  *string `json:"check_out_time,omitempty"` // 24h
	TotalHours    *string `json:"total_hours,omitempty"`
	HoursWorked   string  `json:"hours_worked"`
	IsAdminAction bool    `json:"is_admin_action"`
	Location      *string `json:"location,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// NormalizeLocation trims a client-supplied location; blank means none.
func NormalizeLocation(loc *string) *string {
	if loc == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*loc)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
