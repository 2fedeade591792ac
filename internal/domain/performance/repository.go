package performance

import (
	"context"
	"time"

	"github.com/classdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ExamRepository defines the persistence interface for exams
type ExamRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Exam, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Exam, error)
	FindByDate(ctx context.Context, date time.Time) ([]Exam, error)
	Save(ctx context.Context, exam *Exam) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RecordRepository defines the persistence interface for performance records
type RecordRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Record, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Record, error)
	FindByStudent(ctx context.Context, studentID uuid.UUID) ([]Record, error)
	Save(ctx context.Context, record *Record) error
	Delete(ctx context.Context, id uuid.UUID) error
}
