package response

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/homecare-staffing/nursing-backend-go/internal/domain/assignment"
	"github.com/homecare-staffing/nursing-backend-go/internal/domain/attendance"
	"github.com/homecare-staffing/nursing-backend-go/internal/domain/auth"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/database"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Not found
	case errors.Is(err, assignment.ErrAssignmentNotFound):
		NotFound(w, "Assignment not found")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Expected attendance outcomes
	case errors.Is(err, attendance.ErrInvalidState):
		ErrorWithCode(w, http.StatusConflict, "INVALID_STATE", err.Error())
	case errors.Is(err, attendance.ErrUnmarkWindowExpired):
		ErrorWithCode(w, http.StatusForbidden, "WINDOW_EXPIRED", err.Error())

	// Storage
	case errors.Is(err, database.ErrConflict):
		Conflict(w, "Attendance is being modified by another request, please retry")
	case errors.Is(err, database.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		slog.Error("Repository unavailable", "error", err)
		ServiceUnavailable(w, "Attendance storage is temporarily unavailable, please retry")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
