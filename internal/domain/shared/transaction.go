package shared

import "context"

// TransactionManager runs a function within a single storage transaction.
// Repositories called with the context passed to fn participate in that
// transaction; if fn returns an error the whole transaction rolls back.
//
// The payment-recording flow depends on this: inserting a Payment and
// bumping the owning student's paid fee are logically one write.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
