package student

import (
	"github.com/classdesk/backend/internal/domain/shared"
	"github.com/classdesk/backend/internal/domain/student"
)

// Categories returns the known academic tracks in display order
func (s *StudentService) Categories() []string {
	categories := student.Categories()
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.String()
	}
	return names
}

// CoursesFor returns the fixed course set of a category
func (s *StudentService) CoursesFor(category string) ([]string, error) {
	c := student.Category(category)
	if !c.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown category")
	}
	return student.CoursesFor(c), nil
}

// CategoryChange computes the cascading course and year reset for a
// category selection on the enrollment form.
func (s *StudentService) CategoryChange(category string) (*CategoryChangeResponse, error) {
	c := student.Category(category)
	if !c.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown category")
	}
	response := ToCategoryChangeResponse(student.OnCategoryChange(c))
	return &response, nil
}
