package handler

import (
	appstudent "github.com/classdesk/backend/internal/application/student"
	"github.com/classdesk/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StudentHandler handles student enrollment API endpoints
type StudentHandler struct {
	BaseHandler
	studentService *appstudent.StudentService
}

// NewStudentHandler creates a new StudentHandler
func NewStudentHandler(studentService *appstudent.StudentService) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
	}
}

// Create enrolls a new student
func (h *StudentHandler) Create(c *gin.Context) {
	var req appstudent.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	student, err := h.studentService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, student)
}

// Get retrieves a student by ID with the derived ledger
func (h *StudentHandler) Get(c *gin.Context) {
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

	student, err := h.studentService.GetByID(c.Request.Context(), studentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, student)
}

// List retrieves students with filtering and pagination
func (h *StudentHandler) List(c *gin.Context) {
	var filter appstudent.StudentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	students, total, err := h.studentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	h.SuccessWithMeta(c, students, total, page, pageSize)
}

// Update updates a student's profile and fee terms
func (h *StudentHandler) Update(c *gin.Context) {
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

	var req appstudent.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	student, err := h.studentService.Update(c.Request.Context(), studentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, student)
}

// Delete removes a student
func (h *StudentHandler) Delete(c *gin.Context) {
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

	if err := h.studentService.Delete(c.Request.Context(), studentID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GetLedger returns the derived fee ledger for a student
func (h *StudentHandler) GetLedger(c *gin.Context) {
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

	ledger, err := h.studentService.GetLedger(c.Request.Context(), studentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ledger)
}

// GetInstallments returns the student's installment plan
func (h *StudentHandler) GetInstallments(c *gin.Context) {
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

	installments, err := h.studentService.GetInstallments(c.Request.Context(), studentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, installments)
}

// RebuildInstallments replaces the plan with equal-split installments
func (h *StudentHandler) RebuildInstallments(c *gin.Context) {
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

	var req appstudent.RebuildInstallmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	installments, err := h.studentService.RebuildInstallments(c.Request.Context(), studentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, installments)
}

// AppendInstallment adds one empty installment row to the plan
func (h *StudentHandler) AppendInstallment(c *gin.Context) {
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

	installments, err := h.studentService.AppendInstallment(c.Request.Context(), studentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, installments)
}

// ReplaceInstallments swaps in a hand-edited installment plan
func (h *StudentHandler) ReplaceInstallments(c *gin.Context) {
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

	var req appstudent.ReplaceInstallmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	installments, err := h.studentService.ReplaceInstallments(c.Request.Context(), studentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, installments)
}
