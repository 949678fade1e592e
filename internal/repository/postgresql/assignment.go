package postgresql

import (
	"context"

	"github.com/homecare-staffing/nursing-backend-go/internal/domain/assignment"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/database"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/utils"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type assignmentRepository struct {
	db *database.DB
}

// GetByID implements assignment.AssignmentRepository.
func (r *assignmentRepository) GetByID(ctx context.Context, id string) (assignment.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, nurse_id, client_id, start_date, end_date,
			   scheduled_shift_start, scheduled_shift_end, salary_per_day,
			   created_at, updated_at
		FROM assignments
		WHERE id = $1
	`

	var (
		asg        assignment.Assignment
		endDate    pgtype.Date
		start, end pgtype.Time
	)
	err := q.QueryRow(ctx, query, id).Scan(
		&asg.ID, &asg.NurseID, &asg.ClientID, &asg.StartDate, &endDate,
		&start, &end, &asg.SalaryPerDay,
		&asg.CreatedAt, &asg.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return assignment.Assignment{}, assignment.ErrAssignmentNotFound
		}
		return assignment.Assignment{}, database.Wrap("failed to get assignment", err)
	}

	asg.StartDate = utils.DateOf(asg.StartDate)
	if endDate.Valid {
		d := utils.DateOf(endDate.Time)
		asg.EndDate = &d
	}
	asg.ScheduledShiftStart = fromPgTime(start)
	asg.ScheduledShiftEnd = fromPgTime(end)

	return asg, nil
}

func NewAssignmentRepository(db *database.DB) assignment.AssignmentRepository {
	return &assignmentRepository{db: db}
}
