package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/homecare-staffing/nursing-backend-go/internal/domain/attendance"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/database"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/utils"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type attendanceRepository struct {
	db *database.DB
}

const attendanceColumns = `
	id, assignment_id, date, start_time, end_time, total_hours,
	is_admin_action, location, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var (
		att        attendance.Attendance
		start, end pgtype.Time
	)
	err := row.Scan(
		&att.ID, &att.AssignmentID, &att.Date, &start, &end, &att.TotalHours,
		&att.IsAdminAction, &att.Location, &att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	att.Date = utils.DateOf(att.Date)
	att.StartTime = fromPgTime(start)
	att.EndTime = fromPgTime(end)
	return att, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE id = $1`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, database.Wrap("failed to get attendance by id", err)
	}

	return att, nil
}

// GetByAssignmentAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByAssignmentAndDate(ctx context.Context, assignmentID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE assignment_id = $1
		  AND date = $2
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, assignmentID, toPgDate(date)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, database.Wrap("failed to get attendance by assignment and date", err)
	}

	return &att, nil
}

// ListByAssignment implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByAssignment(ctx context.Context, assignmentID string, from, to time.Time) (map[string]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE assignment_id = $1
		  AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, assignmentID, toPgDate(from), toPgDate(to))
	if err != nil {
		return nil, database.Wrap("failed to list attendance", err)
	}
	defer rows.Close()

	result := make(map[string]attendance.Attendance)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, database.Wrap("failed to scan attendance", err)
		}
		result[utils.DateKey(att.Date)] = att
	}
	if err := rows.Err(); err != nil {
		return nil, database.Wrap("failed to iterate attendance", err)
	}

	return result, nil
}

// Upsert implements attendance.AttendanceRepository.
// The (assignment_id, date) unique constraint makes concurrent inserts of the
// same day collapse into one row; the later write wins.
func (a *attendanceRepository) Upsert(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	if att.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to generate attendance id: %w", err)
		}
		att.ID = id.String()
	}

	query := `
		INSERT INTO attendances (
			id, assignment_id, date, start_time, end_time, total_hours, is_admin_action, location
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
		ON CONFLICT (assignment_id, date) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			total_hours = EXCLUDED.total_hours,
			is_admin_action = EXCLUDED.is_admin_action,
			location = EXCLUDED.location,
			updated_at = NOW()
		RETURNING ` + attendanceColumns

	saved, err := scanAttendance(q.QueryRow(ctx, query,
		att.ID,
		att.AssignmentID,
		toPgDate(att.Date),
		toPgTime(att.StartTime),
		toPgTime(att.EndTime),
		att.TotalHours,
		att.IsAdminAction,
		att.Location,
	))
	if err != nil {
		return attendance.Attendance{}, database.Wrap("failed to upsert attendance", err)
	}

	return saved, nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return database.Wrap("failed to delete attendance", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
