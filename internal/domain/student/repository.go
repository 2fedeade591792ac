package student

import (
	"context"

	"github.com/classdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the persistence interface for students
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Student, error)
	FindByPhone(ctx context.Context, phone string) (*Student, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Student, error)
	FindByCategory(ctx context.Context, category Category, filter shared.Filter) ([]Student, error)
	Save(ctx context.Context, s *Student) error
	// SaveWithLock persists the student only if the stored version matches
	// the aggregate's previous version. Returns ErrConcurrencyConflict
	// when another writer got there first.
	SaveWithLock(ctx context.Context, s *Student) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
