package handler

import (
	appreporting "github.com/classdesk/backend/internal/application/reporting"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles aggregated report API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *appreporting.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *appreporting.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// FeeSummary returns the category/course/year fee summary over all students
func (h *ReportHandler) FeeSummary(c *gin.Context) {
	var filter appreporting.FeeSummaryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	summary, err := h.reportService.FeeSummary(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// AttendanceSummary returns per-category attendance percentages
func (h *ReportHandler) AttendanceSummary(c *gin.Context) {
	var filter appreporting.AttendanceSummaryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	summary, err := h.reportService.AttendanceSummary(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// Dashboard returns headline stats plus the most recent payments
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dashboard)
}

// Reminders lists due installments, birthdays and exams for one day.
// An empty date defaults to today.
func (h *ReportHandler) Reminders(c *gin.Context) {
	reminders, err := h.reportService.Reminders(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reminders)
}
