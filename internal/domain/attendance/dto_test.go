package attendance

import (
	"errors"
	"testing"

	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/utils"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAssignmentID = "0190a6c2-4b1e-7c3d-9f00-1a2b3c4d5e6f"

func strPtr(s string) *string { return &s }

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs), "expected validation errors, got %v", err)
	return verrs.ToMap()
}

func TestTimelineRequest_Validate_Defaults(t *testing.T) {
	req := TimelineRequest{AssignmentID: testAssignmentID}
	require.NoError(t, req.Validate())
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 20, req.Limit)

	from, to := req.Range()
	assert.Nil(t, from)
	assert.Nil(t, to)
}

func TestTimelineRequest_Validate_Errors(t *testing.T) {
	req := TimelineRequest{
		AssignmentID: "nope",
		Page:         -1,
		Limit:        101,
		StartDate:    strPtr("2024-13-01"),
	}
	errs := fieldErrors(t, req.Validate())
	assert.Contains(t, errs, "assignment_id")
	assert.Contains(t, errs, "page")
	assert.Contains(t, errs, "limit")
	assert.Contains(t, errs, "start_date")

	reversed := TimelineRequest{
		AssignmentID: testAssignmentID,
		StartDate:    strPtr("2024-01-05"),
		EndDate:      strPtr("2024-01-01"),
	}
	errs = fieldErrors(t, reversed.Validate())
	assert.Equal(t, "end_date must not be before start_date", errs["end_date"])
}

func TestTimelineRequest_Validate_MaxSpan(t *testing.T) {
	fullLeapYear := TimelineRequest{AssignmentID: testAssignmentID, StartDate: strPtr("2024-01-01"), EndDate: strPtr("2024-12-31")}
	require.NoError(t, fullLeapYear.Validate())

	tooLong := TimelineRequest{AssignmentID: testAssignmentID, StartDate: strPtr("2024-01-01"), EndDate: strPtr("2025-01-01")}
	errs := fieldErrors(t, tooLong.Validate())
	assert.Equal(t, "date range must not exceed 366 days", errs["end_date"])

	millennia := TimelineRequest{AssignmentID: testAssignmentID, StartDate: strPtr("0001-01-01"), EndDate: strPtr("9999-12-31")}
	errs = fieldErrors(t, millennia.Validate())
	assert.Contains(t, errs, "end_date")
}

func TestTimelineRequest_Range(t *testing.T) {
	req := TimelineRequest{AssignmentID: testAssignmentID, StartDate: strPtr("2024-01-02"), EndDate: strPtr("")}
	require.NoError(t, req.Validate())
	from, to := req.Range()
	require.NotNil(t, from)
	assert.Equal(t, "2024-01-02", utils.DateKey(*from))
	assert.Nil(t, to)
}

func TestMarkAttendanceRequest_Validate(t *testing.T) {
	ok := MarkAttendanceRequest{
		AssignmentID: testAssignmentID,
		Date:         "2024-01-03",
		CheckIn:      "09:30",
		CheckOut:     strPtr("05:45 PM"),
	}
	require.NoError(t, ok.Validate())
	date, in, out := ok.Values()
	assert.Equal(t, "2024-01-03", utils.DateKey(date))
	assert.Equal(t, utils.NewTimeOfDay(9, 30, 0), in)
	require.NotNil(t, out)
	assert.Equal(t, utils.NewTimeOfDay(17, 45, 0), *out)

	openEnded := MarkAttendanceRequest{AssignmentID: testAssignmentID, Date: "2024-01-03", CheckIn: "09:30", CheckOut: strPtr(" ")}
	require.NoError(t, openEnded.Validate())
	_, _, out = openEnded.Values()
	assert.Nil(t, out)

	reversed := MarkAttendanceRequest{AssignmentID: testAssignmentID, Date: "2024-01-03", CheckIn: "17:00", CheckOut: strPtr("09:00")}
	errs := fieldErrors(t, reversed.Validate())
	assert.Equal(t, "check_out must not be before check_in", errs["check_out"])

	missing := MarkAttendanceRequest{AssignmentID: testAssignmentID}
	errs = fieldErrors(t, missing.Validate())
	assert.Equal(t, "date is required", errs["date"])
	assert.Equal(t, "check_in is required", errs["check_in"])

	malformed := MarkAttendanceRequest{AssignmentID: testAssignmentID, Date: "03/01/2024", CheckIn: "9 o'clock"}
	errs = fieldErrors(t, malformed.Validate())
	assert.Contains(t, errs, "date")
	assert.Contains(t, errs, "check_in")
}

func TestUnmarkAttendanceRequest_Validate(t *testing.T) {
	byID := UnmarkAttendanceRequest{AttendanceID: strPtr(testAssignmentID)}
	assert.NoError(t, byID.Validate())

	byKey := UnmarkAttendanceRequest{AssignmentID: strPtr(testAssignmentID), Date: strPtr("2024-01-01")}
	assert.NoError(t, byKey.Validate())

	errs := fieldErrors(t, (&UnmarkAttendanceRequest{}).Validate())
	assert.Contains(t, errs, "assignment_id")
	assert.Contains(t, errs, "date")

	errs = fieldErrors(t, (&UnmarkAttendanceRequest{AttendanceID: strPtr("42")}).Validate())
	assert.Contains(t, errs, "attendance_id")
}

func TestErrorTaxonomy(t *testing.T) {
	assert.ErrorIs(t, ErrNotCheckedIn, ErrInvalidState)
	assert.ErrorIs(t, ErrNoScheduledShift, ErrInvalidState)
	assert.NotErrorIs(t, ErrUnmarkWindowExpired, ErrInvalidState)
}

func TestNormalizeLocation(t *testing.T) {
	assert.Nil(t, NormalizeLocation(nil))
	assert.Nil(t, NormalizeLocation(strPtr("  ")))
	assert.Equal(t, "Ward 3", *NormalizeLocation(strPtr(" Ward 3 ")))
}
