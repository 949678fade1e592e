package postgresql

import (
	"context"
	"log/slog"
	"time"

	"github.com/homecare-staffing/nursing-backend-go/internal/domain/leave"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/database"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/utils"
)

type leaveRepository struct {
	db *database.DB
}

// ListApproved implements leave.LeaveRepository.
func (r *leaveRepository) ListApproved(ctx context.Context, nurseID string, from, to time.Time) ([]leave.Interval, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, nurse_id, start_date, end_date, leave_type
		FROM leave_requests
		WHERE nurse_id = $1
		  AND status = $2
		  AND start_date <= $4
		  AND end_date >= $3
		ORDER BY start_date, created_at
	`

	rows, err := q.Query(ctx, query, nurseID, string(leave.RequestStatusApproved), toPgDate(from), toPgDate(to))
	if err != nil {
		return nil, database.Wrap("failed to list approved leave", err)
	}
	defer rows.Close()

	var intervals []leave.Interval
	for rows.Next() {
		var l leave.Interval
		if err := rows.Scan(&l.ID, &l.NurseID, &l.StartDate, &l.EndDate, &l.LeaveType); err != nil {
			return nil, database.Wrap("failed to scan leave", err)
		}
		l.StartDate, l.EndDate = utils.DateOf(l.StartDate), utils.DateOf(l.EndDate)
		if !l.LeaveType.IsValid() {
			slog.Warn("Skipping leave with unknown type", "leave_id", l.ID, "leave_type", l.LeaveType)
			continue
		}
		intervals = append(intervals, l)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Wrap("failed to iterate leave", err)
	}

	return intervals, nil
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}
