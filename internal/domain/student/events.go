package student

import (
	"github.com/classdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StudentEnrolledEvent is raised when a new student is enrolled
type StudentEnrolledEvent struct {
	shared.BaseDomainEvent
	StudentID uuid.UUID       `json:"student_id"`
	Name      string          `json:"name"`
	Category  Category        `json:"category"`
	Course    string          `json:"course"`
	TotalFee  decimal.Decimal `json:"total_fee"`
}

// EventType returns the event type name
func (e *StudentEnrolledEvent) EventType() string {
	return "StudentEnrolled"
}

// NewStudentEnrolledEvent creates a new StudentEnrolledEvent
func NewStudentEnrolledEvent(s *Student) *StudentEnrolledEvent {
	return &StudentEnrolledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("StudentEnrolled", "Student", s.ID),
		StudentID:       s.ID,
		Name:            s.Name,
		Category:        s.Category,
		Course:          s.Course,
		TotalFee:        s.TotalFee,
	}
}
