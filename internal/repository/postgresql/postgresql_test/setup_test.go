package postgresql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/database"
	"github.com/homecare-staffing/nursing-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

var testDB *database.DB

// setupTestDB connects to TEST_DATABASE_URL, applies the schema and empties
// the tables. Tests are skipped when no database is configured.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	if testDB == nil {
		db, err := database.NewPostgreSQLDB(dsn, database.PoolOptions{MaxConns: 10, MinConns: 1})
		require.NoError(t, err)
		testDB = db
	}

	ctx := context.Background()
	require.NoError(t, postgresql.Migrate(ctx, testDB))
	_, err := testDB.Exec(ctx, "TRUNCATE TABLE attendances, assignments, leave_requests CASCADE")
	require.NoError(t, err)

	return testDB
}

func createTestAssignment(t *testing.T, db *database.DB, nurseID string, start time.Time, end *time.Time) string {
	t.Helper()
	id := uuid.NewString()
	_, err := db.Exec(context.Background(), `
		INSERT INTO assignments (id, nurse_id, client_id, start_date, end_date, scheduled_shift_start, scheduled_shift_end, salary_per_day)
		VALUES ($1, $2, $3, $4, $5, '09:00', '17:00', 1500.50)
	`, id, nurseID, uuid.NewString(), start, end)
	require.NoError(t, err)
	return id
}

func createTestLeave(t *testing.T, db *database.DB, nurseID, leaveType, status string, start, end time.Time) {
	t.Helper()
	_, err := db.Exec(context.Background(), `
		INSERT INTO leave_requests (nurse_id, leave_type, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5)
	`, nurseID, leaveType, start, end, status)
	require.NoError(t, err)
}
