package performance

import (
	"time"

	"github.com/classdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Exam is a scheduled test for one category/course cohort
type Exam struct {
	shared.BaseAggregateRoot
	Name     string    `json:"name"`
	Date     time.Time `json:"date"`
	Category string    `json:"category,omitempty"`
	Course   string    `json:"course,omitempty"`
	Year     int       `json:"year,omitempty"`
}

// NewExam schedules a new exam
func NewExam(name string, date time.Time, category, course string, year int) (*Exam, error) {
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Exam name is required")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Exam date is required")
	}

	return &Exam{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Date:              date,
		Category:          category,
		Course:            course,
		Year:              year,
	}, nil
}

// IsOn reports whether the exam takes place on the given day
func (e *Exam) IsOn(day time.Time) bool {
	y1, m1, d1 := e.Date.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Reschedule moves the exam to a new date
func (e *Exam) Reschedule(date time.Time) error {
	if date.IsZero() {
		return shared.NewDomainError("VALIDATION_ERROR", "Exam date is required")
	}
	e.Date = date
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return nil
}

// Record is a student's result in one exam, as a percentage score
type Record struct {
	shared.BaseAggregateRoot
	StudentID  uuid.UUID       `json:"student_id"`
	ExamName   string          `json:"exam_name"`
	Date       time.Time       `json:"date"`
	Percentage decimal.Decimal `json:"percentage"`
}

// NewRecord creates a performance record. Percentage must be within 0..100.
func NewRecord(studentID uuid.UUID, examName string, date time.Time, percentage decimal.Decimal) (*Record, error) {
	if studentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STUDENT", "Student ID cannot be empty")
	}
	if examName == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Exam name is required")
	}
	if percentage.IsNegative() || percentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Percentage must be between 0 and 100")
	}
	if date.IsZero() {
		date = time.Now()
	}

	return &Record{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StudentID:         studentID,
		ExamName:          examName,
		Date:              date,
		Percentage:        percentage,
	}, nil
}
