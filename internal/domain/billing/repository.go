package billing

import (
	"context"
	"time"

	"github.com/classdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentRepository defines the persistence interface for payment entries.
// Payments are append-only: there is no update or delete.
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Payment, error)
	FindByStudent(ctx context.Context, studentID uuid.UUID, filter shared.Filter) ([]Payment, error)
	FindRecent(ctx context.Context, limit int) ([]Payment, error)
	FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]Payment, error)
	Save(ctx context.Context, payment *Payment) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
