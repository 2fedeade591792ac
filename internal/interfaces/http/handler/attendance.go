package handler

import (
	appattendance "github.com/classdesk/backend/internal/application/attendance"
	"github.com/classdesk/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AttendanceHandler handles attendance marking API endpoints
type AttendanceHandler struct {
	BaseHandler
	attendanceService *appattendance.Service
}

// NewAttendanceHandler creates a new AttendanceHandler
func NewAttendanceHandler(attendanceService *appattendance.Service) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
	}
}

// BulkMark marks attendance for a class roster on one date
func (h *AttendanceHandler) BulkMark(c *gin.Context) {
	var req appattendance.BulkMarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	result, err := h.attendanceService.BulkMark(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List retrieves attendance records with filtering
func (h *AttendanceHandler) List(c *gin.Context) {
	var filter appattendance.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	records, err := h.attendanceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, records)
}

// ListByStudent retrieves one student's attendance over a date range
func (h *AttendanceHandler) ListByStudent(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}

	studentID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid student ID format")
		return
	}

	records, err := h.attendanceService.ListByStudent(c.Request.Context(), studentID, c.Query("from"), c.Query("to"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, records)
}

// ListByDate retrieves all marks of one calendar day
func (h *AttendanceHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		h.BadRequest(c, "Query parameter 'date' is required")
		return
	}

	records, err := h.attendanceService.ListByDate(c.Request.Context(), date)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, records)
}

// Delete removes an attendance record
func (h *AttendanceHandler) Delete(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid record ID")
		return
	}

	recordID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid record ID format")
		return
	}

	if err := h.attendanceService.Delete(c.Request.Context(), recordID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
