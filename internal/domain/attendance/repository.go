package attendance

import (
	"context"
	"time"

	"github.com/classdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the persistence interface for attendance records
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Record, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Record, error)
	FindByStudent(ctx context.Context, studentID uuid.UUID, from, to time.Time) ([]Record, error)
	FindByDate(ctx context.Context, date time.Time) ([]Record, error)
	// FindForDay returns the existing record for a student/date/subject
	// combination so bulk marking can upsert instead of duplicating.
	FindForDay(ctx context.Context, studentID uuid.UUID, date time.Time, subject string) (*Record, error)
	CountPresent(ctx context.Context, studentID uuid.UUID, from, to time.Time) (int64, error)
	Save(ctx context.Context, record *Record) error
	Delete(ctx context.Context, id uuid.UUID) error
}
