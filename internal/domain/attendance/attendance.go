package attendance

import (
	"time"

	"github.com/classdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Status represents a single day's attendance mark
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// Record is one student's attendance mark for one date and subject
type Record struct {
	shared.BaseAggregateRoot
	StudentID uuid.UUID `json:"student_id"`
	Date      time.Time `json:"date"`
	Subject   string    `json:"subject,omitempty"`
	Status    Status    `json:"status"`
}

// NewRecord creates an attendance record for a student on a date
func NewRecord(studentID uuid.UUID, date time.Time, subject string, status Status) (*Record, error) {
	if studentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STUDENT", "Student ID cannot be empty")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Attendance date is required")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Attendance status must be Present or Absent")
	}

	return &Record{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StudentID:         studentID,
		Date:              truncateToDay(date),
		Subject:           subject,
		Status:            status,
	}, nil
}

// Remark changes the status of an existing record (corrections)
func (r *Record) Remark(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("VALIDATION_ERROR", "Attendance status must be Present or Absent")
	}
	r.Status = status
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// IsPresent returns true if the student was marked present
func (r *Record) IsPresent() bool {
	return r.Status == StatusPresent
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
