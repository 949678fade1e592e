package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/homecare-staffing/nursing-backend-go/internal/domain/attendance"
	"github.com/homecare-staffing/nursing-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Timeline(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	FullShift(w http.ResponseWriter, r *http.Request)
	Mark(w http.ResponseWriter, r *http.Request)
	Unmark(w http.ResponseWriter, r *http.Request)
	UnmarkByDate(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// decodeOptionalJSON decodes the body into dst; an empty body leaves dst untouched.
func decodeOptionalJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Timeline implements AttendanceHandler.
func (h *attendanceHandlerImpl) Timeline(w http.ResponseWriter, r *http.Request) {
	req := attendance.TimelineRequest{
		AssignmentID: chi.URLParam(r, "assignmentID"),
	}

	// Date range filters
	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		req.StartDate = &startDate
	}

	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		req.EndDate = &endDate
	}

	// Pagination
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil {
			req.Page = pageNum
		}
	}

	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil {
			req.Limit = limitNum
		}
	}

	result, err := h.attendanceService.GetTimeline(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetTodayStatus(r.Context(), chi.URLParam(r, "assignmentID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.AdminCheckInRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		slog.Error("Failed to decode check-in request", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.AssignmentID = chi.URLParam(r, "assignmentID")

	result, err := h.attendanceService.AdminCheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check in recorded", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.AdminCheckOutRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		slog.Error("Failed to decode check-out request", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.AttendanceID = chi.URLParam(r, "attendanceID")

	result, err := h.attendanceService.AdminCheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check out recorded", result)
}

// FullShift implements AttendanceHandler.
func (h *attendanceHandlerImpl) FullShift(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.MarkFullShift(r.Context(), chi.URLParam(r, "assignmentID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Full shift marked", result)
}

// Mark implements AttendanceHandler.
func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode mark attendance request", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.AssignmentID = chi.URLParam(r, "assignmentID")

	result, err := h.attendanceService.MarkAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance marked", result)
}

// Unmark implements AttendanceHandler.
func (h *attendanceHandlerImpl) Unmark(w http.ResponseWriter, r *http.Request) {
	attendanceID := chi.URLParam(r, "attendanceID")

	if err := h.attendanceService.UnmarkAttendance(r.Context(), attendance.UnmarkAttendanceRequest{AttendanceID: &attendanceID}); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance unmarked", nil)
}

// UnmarkByDate implements AttendanceHandler.
func (h *attendanceHandlerImpl) UnmarkByDate(w http.ResponseWriter, r *http.Request) {
	assignmentID := chi.URLParam(r, "assignmentID")
	date := chi.URLParam(r, "date")

	req := attendance.UnmarkAttendanceRequest{AssignmentID: &assignmentID, Date: &date}
	if err := h.attendanceService.UnmarkAttendance(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance unmarked", nil)
}
