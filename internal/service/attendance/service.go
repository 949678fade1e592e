package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/homecare-staffing/nursing-backend-go/internal/domain/assignment"
	"github.com/homecare-staffing/nursing-backend-go/internal/domain/attendance"
	"github.com/homecare-staffing/nursing-backend-go/internal/domain/leave"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/database"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/lock"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/utils"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

const (
	defaultRepositoryTimeout = 5 * time.Second
	defaultLockWaitTimeout   = 3 * time.Second
)

type AttendanceServiceImpl struct {
	assignment.AssignmentRepository
	attendance.AttendanceRepository
	leave.LeaveRepository
	locker lock.Locker

	location          *time.Location
	repositoryTimeout time.Duration
	lockWaitTimeout   time.Duration
	now               func() time.Time
}

// Options tunes the engine. Zero values fall back to UTC, 5s repository timeout,
// 3s lock wait and time.Now.
type Options struct {
	Location          *time.Location
	RepositoryTimeout time.Duration
	LockWaitTimeout   time.Duration
	Now               func() time.Time
}

// GetTimeline implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetTimeline(ctx context.Context, req attendance.TimelineRequest) (attendance.TimelineResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.TimelineResponse{}, err
	}

	asg, err := a.getAssignment(ctx, req.AssignmentID)
	if err != nil {
		return attendance.TimelineResponse{}, err
	}

	from, to := asg.DefaultRange(a.today())
	// Explicit bounds are taken as given, even outside the assignment period
	reqFrom, reqTo := req.Range()
	if reqFrom != nil {
		from = *reqFrom
	}
	if reqTo != nil {
		to = *reqTo
	}
	if attendance.ExceedsTimelineSpan(from, to) {
		if reqFrom != nil {
			return attendance.TimelineResponse{}, validator.Single("start_date",
				fmt.Sprintf("date range must not exceed %d days", attendance.MaxTimelineDays))
		}
		// Long-running assignments show their most recent days by default
		from = to.AddDate(0, 0, -(attendance.MaxTimelineDays - 1))
	}

	var (
		rows   map[string]attendance.Attendance
		leaves []leave.Interval
	)
	if !to.Before(from) {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			rctx, cancel := a.repoContext(gctx)
			defer cancel()
			var err error
			rows, err = a.AttendanceRepository.ListByAssignment(rctx, asg.ID, from, to)
			return repositoryError("failed to list attendance", err)
		})
		g.Go(func() error {
			rctx, cancel := a.repoContext(gctx)
			defer cancel()
			var err error
			leaves, err = a.LeaveRepository.ListApproved(rctx, asg.NurseID, from, to)
			return repositoryError("failed to list approved leave", err)
		})
		if err := g.Wait(); err != nil {
			return attendance.TimelineResponse{}, err
		}
	}

	days, err := BuildTimeline(&asg, rows, leaves, from, to)
	if err != nil {
		return attendance.TimelineResponse{}, err
	}

	records, total := Paginate(days, req.Page, req.Limit)

	return attendance.TimelineResponse{
		AssignmentID: asg.ID,
		StartDate:    utils.DateKey(from),
		EndDate:      utils.DateKey(to),
		TotalCount:   int64(total),
		Page:         req.Page,
		Limit:        req.Limit,
		TotalPages:   totalPages(total, req.Limit),
		Showing:      showing(req.Page, req.Limit, len(records), total),
		Summary:      Summarize(days),
		Records:      records,
	}, nil
}

// GetTodayStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetTodayStatus(ctx context.Context, assignmentID string) (attendance.TodayStatusResponse, error) {
	if !validator.IsValidUUID(assignmentID) {
		return attendance.TodayStatusResponse{}, validator.Single("assignment_id", "assignment_id must be a valid UUID")
	}

	asg, err := a.getAssignment(ctx, assignmentID)
	if err != nil {
		return attendance.TodayStatusResponse{}, err
	}

	today := a.today()
	var (
		row    *attendance.Attendance
		leaves []leave.Interval
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		row, err = a.findDay(gctx, asg.ID, today)
		return err
	})
	g.Go(func() error {
		rctx, cancel := a.repoContext(gctx)
		defer cancel()
		var err error
		leaves, err = a.LeaveRepository.ListApproved(rctx, asg.NurseID, today, today)
		return repositoryError("failed to list approved leave", err)
	})
	if err := g.Wait(); err != nil {
		return attendance.TodayStatusResponse{}, err
	}

	resp := attendance.TodayStatusResponse{Date: utils.DateKey(today)}
	for _, l := range leaves {
		if l.Covers(today) {
			leaveType := l.LeaveType
			resp.OnLeave = true
			resp.LeaveType = &leaveType
			break
		}
	}

	if row == nil {
		return resp, nil
	}

	resp.AttendanceID = &row.ID
	if row.StartTime != nil {
		checkIn := row.StartTime.Format12h()
		resp.CheckedIn = true
		resp.CheckInTime = &checkIn
	}
	if row.EndTime != nil {
		checkOut := row.EndTime.Format12h()
		resp.CheckOutTime = &checkOut
	}
	if row.TotalHours != nil || row.EndTime != nil {
		worked := FormatDuration(row.TotalHours, row.StartTime, row.EndTime).Display
		resp.TotalHours = &worked
	}
	return resp, nil
}

// today is the current calendar date in the business timezone.
func (a *AttendanceServiceImpl) today() time.Time {
	return utils.DateOf(a.now().In(a.location))
}

func (a *AttendanceServiceImpl) repoContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.repositoryTimeout)
}

func (a *AttendanceServiceImpl) getAssignment(ctx context.Context, id string) (assignment.Assignment, error) {
	rctx, cancel := a.repoContext(ctx)
	defer cancel()

	asg, err := a.AssignmentRepository.GetByID(rctx, id)
	if err != nil {
		return assignment.Assignment{}, repositoryError("failed to get assignment", err)
	}
	return asg, nil
}

func (a *AttendanceServiceImpl) getAttendance(ctx context.Context, id string) (attendance.Attendance, error) {
	rctx, cancel := a.repoContext(ctx)
	defer cancel()

	row, err := a.AttendanceRepository.GetByID(rctx, id)
	if err != nil {
		return attendance.Attendance{}, repositoryError("failed to get attendance", err)
	}
	return row, nil
}

// findDay returns nil when the assignment has no row on date.
func (a *AttendanceServiceImpl) findDay(ctx context.Context, assignmentID string, date time.Time) (*attendance.Attendance, error) {
	rctx, cancel := a.repoContext(ctx)
	defer cancel()

	row, err := a.AttendanceRepository.GetByAssignmentAndDate(rctx, assignmentID, date)
	if err != nil {
		return nil, repositoryError("failed to get attendance by date", err)
	}
	return row, nil
}

// repositoryError wraps err with op. Deadlines that the repository did not
// classify itself are reported as database.ErrUnavailable.
func repositoryError(op string, err error) error {
	if err == nil {
		return nil
	}
	if !errors.Is(err, database.ErrUnavailable) && errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %w", op, database.ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func mapAttendanceToResponse(row attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:            row.ID,
		AssignmentID:  row.AssignmentID,
		Date:          utils.DateKey(row.Date),
		TotalHours:    row.TotalHours,
		HoursWorked:   FormatDuration(row.TotalHours, row.StartTime, row.EndTime).Display,
		IsAdminAction: row.IsAdminAction,
		Location:      row.Location,
		CreatedAt:     row.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:     row.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if row.StartTime != nil {
		checkIn := row.StartTime.String()
		resp.CheckInTime = &checkIn
	}
	if row.EndTime != nil {
		checkOut := row.EndTime.String()
		resp.CheckOutTime = &checkOut
	}
	return resp
}

func NewAttendanceService(
	assignmentRepo assignment.AssignmentRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRepository,
	locker lock.Locker,
	opts Options,
) attendance.AttendanceService {
	svc := &AttendanceServiceImpl{
		AssignmentRepository: assignmentRepo,
		AttendanceRepository: attendanceRepo,
		LeaveRepository:      leaveRepo,
		locker:               locker,
		location:             opts.Location,
		repositoryTimeout:    opts.RepositoryTimeout,
		lockWaitTimeout:      opts.LockWaitTimeout,
		now:                  opts.Now,
	}
	if svc.location == nil {
		svc.location = time.UTC
	}
	if svc.repositoryTimeout <= 0 {
		svc.repositoryTimeout = defaultRepositoryTimeout
	}
	if svc.lockWaitTimeout <= 0 {
		svc.lockWaitTimeout = defaultLockWaitTimeout
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	if svc.locker == nil {
		svc.locker = lock.NewLocalLocker()
	}
	return svc
}
