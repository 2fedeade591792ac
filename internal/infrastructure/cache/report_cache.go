package cache

import (
	"context"
	"time"

	"github.com/classdesk/backend/internal/domain/reporting"
)

// ReportCache caches serialized report payloads (fee summary, dashboard
// stats) so list-heavy report reads do not recompute on every request.
// Values are opaque bytes; callers own the serialization.
//
// Get returns (nil, nil) on a miss so callers can distinguish a miss from
// a backend error.
type ReportCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// DeleteByPrefix drops every key under the prefix. Write paths use this
	// to invalidate all cached reports at once.
	DeleteByPrefix(ctx context.Context, prefix string) error
	Close() error
}

// Both backends also satisfy the domain reporting cache port
var (
	_ reporting.Cache = (ReportCache)(nil)
)
