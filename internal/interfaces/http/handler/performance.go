package handler

import (
	appperformance "github.com/classdesk/backend/internal/application/performance"
	"github.com/classdesk/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PerformanceHandler handles exam scheduling and result API endpoints
type PerformanceHandler struct {
	BaseHandler
	performanceService *appperformance.Service
}

// NewPerformanceHandler creates a new PerformanceHandler
func NewPerformanceHandler(performanceService *appperformance.Service) *PerformanceHandler {
	return &PerformanceHandler{
		performanceService: performanceService,
	}
}

// CreateExam schedules a new exam
func (h *PerformanceHandler) CreateExam(c *gin.Context) {
	var req appperformance.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	exam, err := h.performanceService.CreateExam(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, exam)
}

// GetExam retrieves a single exam
func (h *PerformanceHandler) GetExam(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid exam ID")
		return
	}

	examID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid exam ID format")
		return
	}

	exam, err := h.performanceService.GetExam(c.Request.Context(), examID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, exam)
}

// ListExams retrieves exams with filtering
func (h *PerformanceHandler) ListExams(c *gin.Context) {
	var filter appperformance.ExamListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	exams, err := h.performanceService.ListExams(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, exams)
}

// RescheduleExam moves an exam to a new date
func (h *PerformanceHandler) RescheduleExam(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid exam ID")
		return
	}

	examID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid exam ID format")
		return
	}

	var req appperformance.RescheduleExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	exam, err := h.performanceService.RescheduleExam(c.Request.Context(), examID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, exam)
}

// DeleteExam removes a scheduled exam
func (h *PerformanceHandler) DeleteExam(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid exam ID")
		return
	}

	examID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid exam ID format")
		return
	}

	if err := h.performanceService.DeleteExam(c.Request.Context(), examID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RecordResult records one student's exam result
func (h *PerformanceHandler) RecordResult(c *gin.Context) {
	var req appperformance.RecordResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	record, err := h.performanceService.RecordResult(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, record)
}

// ListResultsByStudent retrieves a student's exam history
func (h *PerformanceHandler) ListResultsByStudent(c *gin.Context) {
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

	records, err := h.performanceService.ListResultsByStudent(c.Request.Context(), studentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, records)
}

// ListResults retrieves exam results for the student named in the query
func (h *PerformanceHandler) ListResults(c *gin.Context) {
	raw := c.Query("student_id")
	if raw == "" {
		h.BadRequest(c, "Query parameter 'student_id' is required")
		return
	}

	studentID, err := uuid.Parse(raw)
	if err != nil {
		h.BadRequest(c, "Invalid student ID format")
		return
	}

	records, err := h.performanceService.ListResultsByStudent(c.Request.Context(), studentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, records)
}

// DeleteResult removes a performance record
func (h *PerformanceHandler) DeleteResult(c *gin.Context) {
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

	if err := h.performanceService.DeleteResult(c.Request.Context(), recordID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
