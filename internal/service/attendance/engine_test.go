package attendance

import (
	"testing"
	"time"

	"github.com/homecare-staffing/nursing-backend-go/internal/domain/assignment"
	"github.com/homecare-staffing/nursing-backend-go/internal/domain/attendance"
	"github.com/homecare-staffing/nursing-backend-go/internal/domain/leave"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tod(hour, minute int) *utils.TimeOfDay {
	t := utils.NewTimeOfDay(hour, minute, 0)
	return &t
}

func strPtr(s string) *string { return &s }

func date(s string) time.Time {
	d, err := utils.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ===== DURATION FORMATTER =====

func TestFormatDuration_StoredTotal(t *testing.T) {
	cases := []struct {
		raw     string
		display string
		minutes int
	}{
		{"0:45", "45 min", 45},
		{"2:00", "2h", 120},
		{"2:30", "2h 30m", 150},
		{"0:00", "0 min", 0},
		{"10:05", "10h 5m", 605},
		{"8:15:59", "8h 15m", 495},
		{"8", "8h", 480},
		{"2.5", "2.5h", 150},
		{"abc", "0 min", 0},
		{"1:xx", "0 min", 0},
		{"1:75", "0 min", 0},
		{"-2", "0 min", 0},
		{"NaN", "0 min", 0},
	}
	for _, c := range cases {
		t.Run(c.raw, func(t *testing.T) {
			got := FormatDuration(strPtr(c.raw), nil, nil)
			assert.Equal(t, c.display, got.Display)
			assert.Equal(t, c.minutes, got.Minutes)
		})
	}
}

func TestFormatDuration_StoredTotalWinsOverTimes(t *testing.T) {
	got := FormatDuration(strPtr("8:00"), tod(9, 5), tod(17, 0))
	assert.Equal(t, "8h", got.Display)
}

func TestFormatDuration_FromTimes(t *testing.T) {
	assert.Equal(t, "7h 55m", FormatDuration(nil, tod(9, 5), tod(17, 0)).Display)
	assert.Equal(t, "30 min", FormatDuration(strPtr("  "), tod(9, 0), tod(9, 30)).Display)

	// Overnight span without a stored total is not wrapped
	overnight := FormatDuration(nil, tod(22, 0), tod(6, 0))
	assert.Equal(t, "0 min", overnight.Display)
	assert.Equal(t, 0, overnight.Minutes)
}

func TestFormatDuration_NothingUsable(t *testing.T) {
	assert.Equal(t, attendance.WorkedDuration{Minutes: 0, Display: "0 min"}, FormatDuration(nil, nil, nil))
	assert.Equal(t, "0 min", FormatDuration(nil, tod(9, 0), nil).Display)
}

// ===== STATUS CLASSIFIER =====

func TestClassify_GraceBoundary(t *testing.T) {
	scheduled := tod(9, 0)

	onTime := &attendance.Attendance{StartTime: tod(9, 15)}
	assert.Equal(t, attendance.StatusCheckedIn, Classify(onTime, scheduled, nil).Status)

	onTime.EndTime = tod(17, 0)
	assert.Equal(t, attendance.StatusPresent, Classify(onTime, scheduled, nil).Status)

	late := &attendance.Attendance{StartTime: tod(9, 16), EndTime: tod(17, 0)}
	assert.Equal(t, attendance.StatusLate, Classify(late, scheduled, nil).Status)

	lateBySecond := utils.NewTimeOfDay(9, 15, 1)
	assert.Equal(t, attendance.StatusLate, Classify(&attendance.Attendance{StartTime: &lateBySecond}, scheduled, nil).Status)
}

func TestClassify_DecisionOrder(t *testing.T) {
	sick := &leave.Interval{LeaveType: leave.TypeSick}

	status := Classify(nil, tod(9, 0), sick)
	assert.Equal(t, attendance.StatusOnLeave, status.Status)
	require.NotNil(t, status.LeaveType)
	assert.Equal(t, leave.TypeSick, *status.LeaveType)

	assert.Equal(t, attendance.DayStatus{Status: attendance.StatusAbsent}, Classify(nil, tod(9, 0), nil))

	// A row wins over leave, even a placeholder without check-in
	assert.Equal(t, attendance.StatusAbsent, Classify(&attendance.Attendance{}, tod(9, 0), sick).Status)
	assert.Equal(t, attendance.StatusCheckedIn, Classify(&attendance.Attendance{StartTime: tod(8, 50)}, tod(9, 0), sick).Status)

	// Late is decided before the row is checked for a check-out
	assert.Equal(t, attendance.StatusLate, Classify(&attendance.Attendance{StartTime: tod(9, 30)}, tod(9, 0), nil).Status)

	// Without a schedule nobody is late
	assert.Equal(t, attendance.StatusPresent, Classify(&attendance.Attendance{StartTime: tod(13, 0), EndTime: tod(18, 0)}, nil, nil).Status)
}

// ===== TIMELINE BUILDER =====

func scenarioAssignment() *assignment.Assignment {
	end := date("2024-01-05")
	return &assignment.Assignment{
		ID:                  testAssignmentID,
		NurseID:             testNurseID,
		StartDate:           date("2024-01-01"),
		EndDate:             &end,
		ScheduledShiftStart: tod(9, 0),
		ScheduledShiftEnd:   tod(17, 0),
	}
}

func TestBuildTimeline_Scenario(t *testing.T) {
	rows := map[string]attendance.Attendance{
		"2024-01-01": {ID: "r1", AssignmentID: testAssignmentID, Date: date("2024-01-01"), StartTime: tod(9, 5), EndTime: tod(17, 0)},
		"2024-01-03": {ID: "r3", AssignmentID: testAssignmentID, Date: date("2024-01-03"), StartTime: tod(9, 30)},
	}

	days, err := BuildTimeline(scenarioAssignment(), rows, nil, date("2024-01-01"), date("2024-01-05"))
	require.NoError(t, err)
	require.Len(t, days, 5)

	expected := []struct {
		date   string
		status attendance.Status
		hours  string
	}{
		{"2024-01-01", attendance.StatusPresent, "7h 55m"},
		{"2024-01-02", attendance.StatusAbsent, "0 min"},
		// 30 minutes past the 09:00 schedule is beyond the grace period
		{"2024-01-03", attendance.StatusLate, "0 min"},
		{"2024-01-04", attendance.StatusAbsent, "0 min"},
		{"2024-01-05", attendance.StatusAbsent, "0 min"},
	}
	for i, e := range expected {
		assert.Equal(t, e.date, days[i].Date)
		assert.Equal(t, e.status, days[i].Status, e.date)
		assert.Equal(t, e.hours, days[i].HoursWorked, e.date)
		assert.Equal(t, testAssignmentID, days[i].AssignmentID)
	}

	require.NotNil(t, days[0].CheckIn)
	assert.Equal(t, "09:05 AM", *days[0].CheckIn)
	assert.Equal(t, "05:00 PM", *days[0].CheckOut)
	assert.Equal(t, "r1", *days[0].AttendanceID)
	assert.Nil(t, days[1].AttendanceID)
	assert.Nil(t, days[2].CheckOut)
}

func TestBuildTimeline_Completeness(t *testing.T) {
	ranges := [][2]string{
		{"2024-01-01", "2024-01-01"},
		{"2024-02-27", "2024-03-02"}, // leap day
		{"2023-12-25", "2024-01-07"},
		{"2024-01-01", "2024-12-31"},
	}
	for _, r := range ranges {
		from, to := date(r[0]), date(r[1])
		days, err := BuildTimeline(scenarioAssignment(), nil, nil, from, to)
		require.NoError(t, err)
		require.Len(t, days, utils.DaysInRange(from, to))

		seen := make(map[string]bool, len(days))
		for i, day := range days {
			assert.False(t, seen[day.Date], "duplicate %s", day.Date)
			seen[day.Date] = true
			assert.Equal(t, utils.DateKey(from.AddDate(0, 0, i)), day.Date)
		}
		assert.Equal(t, r[0], days[0].Date)
		assert.Equal(t, r[1], days[len(days)-1].Date)
	}
}

func TestBuildTimeline_EmptyAndMissingAssignment(t *testing.T) {
	days, err := BuildTimeline(scenarioAssignment(), nil, nil, date("2024-01-05"), date("2024-01-01"))
	require.NoError(t, err)
	assert.Empty(t, days)

	days, err = BuildTimeline(nil, nil, nil, date("2024-01-01"), date("2024-01-05"))
	assert.ErrorIs(t, err, assignment.ErrAssignmentNotFound)
	assert.Nil(t, days)
}

func TestBuildTimeline_LeavePrecedence(t *testing.T) {
	leaves := []leave.Interval{
		{ID: "l2", StartDate: date("2024-01-04"), EndDate: date("2024-01-06"), LeaveType: leave.TypeAnnual},
		{ID: "l1", StartDate: date("2024-01-02"), EndDate: date("2024-01-04"), LeaveType: leave.TypeSick},
	}
	rows := map[string]attendance.Attendance{
		"2024-01-03": {ID: "r3", StartTime: tod(9, 0), EndTime: tod(17, 0)},
	}

	days, err := BuildTimeline(scenarioAssignment(), rows, leaves, date("2024-01-01"), date("2024-01-05"))
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusAbsent, days[0].Status)
	assert.Equal(t, attendance.StatusOnLeave, days[1].Status)
	assert.Equal(t, leave.TypeSick, *days[1].LeaveType)
	assert.Equal(t, attendance.StatusPresent, days[2].Status)
	assert.Nil(t, days[2].LeaveType)

	// Overlapping intervals: the one starting first wins
	assert.Equal(t, leave.TypeSick, *days[3].LeaveType)
	assert.Equal(t, leave.TypeAnnual, *days[4].LeaveType)

	for _, day := range days {
		if day.AttendanceID == nil && day.Date != "2024-01-01" {
			assert.NotEqual(t, attendance.StatusAbsent, day.Status, day.Date)
		}
	}
}

func TestBuildTimeline_Location(t *testing.T) {
	rows := map[string]attendance.Attendance{
		"2024-01-01": {ID: "r1", StartTime: tod(9, 0), Location: strPtr("[12.97, 77.59]"), IsAdminAction: true},
	}
	days, err := BuildTimeline(scenarioAssignment(), rows, nil, date("2024-01-01"), date("2024-01-01"))
	require.NoError(t, err)
	require.NotNil(t, days[0].Location)
	assert.Equal(t, "12.97,77.59", *days[0].Location)
	assert.True(t, days[0].IsAdminAction)
}

func TestSummarize(t *testing.T) {
	days := []attendance.DailyAttendance{
		{Status: attendance.StatusPresent, WorkedMinutes: 480},
		{Status: attendance.StatusLate, WorkedMinutes: 450},
		{Status: attendance.StatusCheckedIn},
		{Status: attendance.StatusAbsent},
		{Status: attendance.StatusOnLeave},
		{Status: attendance.StatusOnLeave},
	}
	summary := Summarize(days)
	assert.Equal(t, attendance.TimelineSummary{
		Present:            1,
		Late:               1,
		CheckedIn:          1,
		Absent:             1,
		OnLeave:            2,
		TotalWorkedMinutes: 930,
		TotalWorked:        "15h 30m",
	}, summary)
}

// ===== PAGER =====

func ascendingDays(from string, n int) []attendance.DailyAttendance {
	start := date(from)
	days := make([]attendance.DailyAttendance, n)
	for i := range days {
		days[i] = attendance.DailyAttendance{Date: utils.DateKey(start.AddDate(0, 0, i))}
	}
	return days
}

func TestPaginate(t *testing.T) {
	days := ascendingDays("2024-01-01", 5)

	page, total := Paginate(days, 1, 2)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "2024-01-05", page[0].Date)
	assert.Equal(t, "2024-01-04", page[1].Date)

	page, _ = Paginate(days, 3, 2)
	require.Len(t, page, 1)
	assert.Equal(t, "2024-01-01", page[0].Date)

	page, total = Paginate(days, 4, 2)
	assert.Empty(t, page)
	assert.Equal(t, 5, total)

	page, _ = Paginate(days, 0, 10)
	assert.Len(t, page, 5)

	// Input order is left untouched
	assert.Equal(t, "2024-01-01", days[0].Date)
}

func TestPaginate_TotalPagesAndShowing(t *testing.T) {
	assert.Equal(t, 3, totalPages(5, 2))
	assert.Equal(t, 1, totalPages(20, 20))
	assert.Equal(t, 0, totalPages(0, 20))

	assert.Equal(t, "1-2 of 5", showing(1, 2, 2, 5))
	assert.Equal(t, "5-5 of 5", showing(3, 2, 1, 5))
	assert.Equal(t, "0 of 5", showing(4, 2, 0, 5))
	assert.Equal(t, "0 of 0", showing(1, 20, 0, 0))
}
