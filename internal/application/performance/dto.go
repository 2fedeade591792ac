package performance

import (
	"time"

	"github.com/classdesk/backend/internal/domain/performance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Exam DTOs
// =============================================================================

// CreateExamRequest schedules a new exam
type CreateExamRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Date     string `json:"date" binding:"required"`
	Category string `json:"category"`
	Course   string `json:"course"`
	Year     int    `json:"year" binding:"min=0"`
}

// RescheduleExamRequest moves an exam to a new date
type RescheduleExamRequest struct {
	Date string `json:"date" binding:"required"`
}

// ExamResponse represents an exam in API responses
type ExamResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Date      string    `json:"date"`
	Category  string    `json:"category,omitempty"`
	Course    string    `json:"course,omitempty"`
	Year      int       `json:"year,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ExamListFilter represents filter options for exam list
type ExamListFilter struct {
	Category string `form:"category"`
	Course   string `form:"course"`
	Date     string `form:"date"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// =============================================================================
// Performance Record DTOs
// =============================================================================

// RecordResultRequest records one student's result for an exam
type RecordResultRequest struct {
	StudentID  uuid.UUID       `json:"student_id" binding:"required"`
	ExamName   string          `json:"exam_name" binding:"required,min=1,max=200"`
	Date       string          `json:"date"`
	Percentage decimal.Decimal `json:"percentage"`
}

// RecordResponse represents a performance record in API responses
type RecordResponse struct {
	ID         uuid.UUID       `json:"id"`
	StudentID  uuid.UUID       `json:"student_id"`
	ExamName   string          `json:"exam_name"`
	Date       string          `json:"date"`
	Percentage decimal.Decimal `json:"percentage"`
	CreatedAt  time.Time       `json:"created_at"`
}

// dateLayout is the calendar-date format used on the performance API
const dateLayout = "2006-01-02"

// ToExamResponse converts a domain Exam to ExamResponse
func ToExamResponse(e *performance.Exam) ExamResponse {
	return ExamResponse{
		ID:        e.ID,
		Name:      e.Name,
		Date:      e.Date.Format(dateLayout),
		Category:  e.Category,
		Course:    e.Course,
		Year:      e.Year,
		CreatedAt: e.CreatedAt,
	}
}

// ToExamResponses converts domain Exams to responses
func ToExamResponses(exams []performance.Exam) []ExamResponse {
	responses := make([]ExamResponse, len(exams))
	for i := range exams {
		responses[i] = ToExamResponse(&exams[i])
	}
	return responses
}

// ToRecordResponse converts a domain Record to RecordResponse
func ToRecordResponse(r *performance.Record) RecordResponse {
	return RecordResponse{
		ID:         r.ID,
		StudentID:  r.StudentID,
		ExamName:   r.ExamName,
		Date:       r.Date.Format(dateLayout),
		Percentage: r.Percentage,
		CreatedAt:  r.CreatedAt,
	}
}

// ToRecordResponses converts domain Records to responses
func ToRecordResponses(records []performance.Record) []RecordResponse {
	responses := make([]RecordResponse, len(records))
	for i := range records {
		responses[i] = ToRecordResponse(&records[i])
	}
	return responses
}
