package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/homecare-staffing/nursing-backend-go/internal/domain/assignment"
	"github.com/homecare-staffing/nursing-backend-go/internal/domain/attendance"
	"github.com/homecare-staffing/nursing-backend-go/internal/domain/auth"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/database"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", validator.Single("date", "date is required"), http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"assignment not found", fmt.Errorf("get: %w", assignment.ErrAssignmentNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"attendance not found", attendance.ErrAttendanceNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"not checked in", attendance.ErrNotCheckedIn, http.StatusConflict, "INVALID_STATE"},
		{"no shift", attendance.ErrNoScheduledShift, http.StatusConflict, "INVALID_STATE"},
		{"window expired", attendance.ErrUnmarkWindowExpired, http.StatusForbidden, "WINDOW_EXPIRED"},
		{"conflict", fmt.Errorf("lock: %w", database.ErrConflict), http.StatusConflict, "CONFLICT"},
		{"unavailable", database.Wrap("query", assert.AnError), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"expired token", auth.ErrTokenExpired, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"not admin", auth.ErrAdminPrivilegeRequired, http.StatusForbidden, "FORBIDDEN"},
		{"unknown", assert.AnError, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, c.err)

			assert.Equal(t, c.status, rec.Code)
			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, c.code, body.Error.Code)
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, validator.ValidationErrors{
		{Field: "check_out", Message: "check_out must not be before check_in"},
	})

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "check_out must not be before check_in", body.Error.Details["check_out"])
}
