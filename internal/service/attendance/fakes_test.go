package attendance

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/homecare-staffing/nursing-backend-go/internal/domain/assignment"
	"github.com/homecare-staffing/nursing-backend-go/internal/domain/attendance"
	"github.com/homecare-staffing/nursing-backend-go/internal/domain/leave"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/utils"
)

const (
	testAssignmentID = "0190a6c2-4b1e-7c3d-9f00-1a2b3c4d5e6f"
	testNurseID      = "0190a6c2-4b1e-7c3d-9f00-aaaaaaaaaaaa"
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock(t time.Time) *testClock { return &testClock{t: t} }

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

type fakeAssignmentRepo struct {
	assignments map[string]assignment.Assignment
}

func (r *fakeAssignmentRepo) GetByID(ctx context.Context, id string) (assignment.Assignment, error) {
	asg, ok := r.assignments[id]
	if !ok {
		return assignment.Assignment{}, assignment.ErrAssignmentNotFound
	}
	return asg, nil
}

type fakeLeaveRepo struct {
	intervals []leave.Interval
	calls     int
	mu        sync.Mutex
}

func (r *fakeLeaveRepo) ListApproved(ctx context.Context, nurseID string, from, to time.Time) ([]leave.Interval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	var out []leave.Interval
	for _, l := range r.intervals {
		if l.NurseID == nurseID && !l.StartDate.After(to) && !l.EndDate.Before(from) {
			out = append(out, l)
		}
	}
	return out, nil
}

// fakeAttendanceRepo keeps rows in a slice with no uniqueness guard, so
// unserialized concurrent upserts of the same day show up as duplicates.
type fakeAttendanceRepo struct {
	mu         sync.Mutex
	rows       []attendance.Attendance
	now        func() time.Time
	writeDelay time.Duration
	blockReads bool
	upserts    int
	deletes    int
}

func (r *fakeAttendanceRepo) wait(ctx context.Context) error {
	if !r.blockReads {
		return nil
	}
	<-ctx.Done()
	return ctx.Err()
}

func (r *fakeAttendanceRepo) indexOf(assignmentID string, date time.Time) int {
	for i, row := range r.rows {
		if row.AssignmentID == assignmentID && row.Date.Equal(utils.DateOf(date)) {
			return i
		}
	}
	return -1
}

func (r *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	if err := r.wait(ctx); err != nil {
		return attendance.Attendance{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r *fakeAttendanceRepo) GetByAssignmentAndDate(ctx context.Context, assignmentID string, date time.Time) (*attendance.Attendance, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexOf(assignmentID, date); i >= 0 {
		row := r.rows[i]
		return &row, nil
	}
	return nil, nil
}

func (r *fakeAttendanceRepo) ListByAssignment(ctx context.Context, assignmentID string, from, to time.Time) (map[string]attendance.Attendance, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]attendance.Attendance)
	for _, row := range r.rows {
		if row.AssignmentID == assignmentID && !row.Date.Before(from) && !row.Date.After(to) {
			out[utils.DateKey(row.Date)] = row
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) Upsert(ctx context.Context, row attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	existing := r.indexOf(row.AssignmentID, row.Date)
	r.mu.Unlock()

	// Gap between the existence check and the write
	if r.writeDelay > 0 {
		time.Sleep(r.writeDelay)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++
	now := r.now()
	row.Date = utils.DateOf(row.Date)
	row.UpdatedAt = now
	if existing >= 0 {
		row.ID = r.rows[existing].ID
		row.CreatedAt = r.rows[existing].CreatedAt
		r.rows[existing] = row
		return row, nil
	}
	row.ID = uuid.NewString()
	row.CreatedAt = now
	r.rows = append(r.rows, row)
	return row, nil
}

func (r *fakeAttendanceRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, row := range r.rows {
		if row.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			r.deletes++
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (r *fakeAttendanceRepo) count(assignmentID string, date time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, row := range r.rows {
		if row.AssignmentID == assignmentID && row.Date.Equal(utils.DateOf(date)) {
			n++
		}
	}
	return n
}

func (r *fakeAttendanceRepo) add(row attendance.Attendance) attendance.Attendance {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	r.rows = append(r.rows, row)
	return row
}
