package handler

import (
	appstudent "github.com/classdesk/backend/internal/application/student"
	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes the fixed academic catalog used by the
// enrollment form: categories, their courses, and year options.
type CatalogHandler struct {
	BaseHandler
	studentService *appstudent.StudentService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(studentService *appstudent.StudentService) *CatalogHandler {
	return &CatalogHandler{
		studentService: studentService,
	}
}

// ListCategories returns the known academic tracks in display order
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	h.Success(c, h.studentService.Categories())
}

// ListCourses returns the course set for a category
func (h *CatalogHandler) ListCourses(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		h.BadRequest(c, "Query parameter 'category' is required")
		return
	}

	courses, err := h.studentService.CoursesFor(category)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, courses)
}

// CategoryChange returns the cascading option reset for a category
// selection: course options, year options, and the reset values.
func (h *CatalogHandler) CategoryChange(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		h.BadRequest(c, "Query parameter 'category' is required")
		return
	}

	change, err := h.studentService.CategoryChange(category)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, change)
}
