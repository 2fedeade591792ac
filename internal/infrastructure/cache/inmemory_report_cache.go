package cache

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Constants for in-memory cache configuration
const (
	defaultCleanupInterval = 30 * time.Second
	defaultReportTTL       = 5 * time.Minute
)

// InMemoryReportCache implements ReportCache using in-memory storage.
// Suitable for single-instance deployments and testing.
type InMemoryReportCache struct {
	entries sync.Map // map[string]*reportEntry
	ttl     time.Duration
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	// Stats for monitoring
	hits   int64
	misses int64
}

// reportEntry wraps a cached payload with expiration time
type reportEntry struct {
	value     []byte
	expiresAt time.Time
}

// isExpired checks if the cache entry has expired
func (e *reportEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemoryReportCacheOption is a functional option for configuring the cache
type InMemoryReportCacheOption func(*InMemoryReportCache)

// WithInMemoryTTL sets the default TTL for cached reports
func WithInMemoryTTL(ttl time.Duration) InMemoryReportCacheOption {
	return func(c *InMemoryReportCache) {
		c.ttl = ttl
	}
}

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemoryReportCacheOption {
	return func(c *InMemoryReportCache) {
		c.logger = logger
	}
}

// NewInMemoryReportCache creates a new in-memory report cache
func NewInMemoryReportCache(opts ...InMemoryReportCacheOption) *InMemoryReportCache {
	cache := &InMemoryReportCache{
		ttl:    defaultReportTTL,
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cache)
	}

	// Start background cleanup goroutine
	go cache.cleanupExpired()

	return cache
}

// Get retrieves a report payload from cache
func (c *InMemoryReportCache) Get(ctx context.Context, key string) ([]byte, error) {
	if value, ok := c.entries.Load(key); ok {
		entry := value.(*reportEntry)
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			c.logger.Debug("report cache hit", zap.String("key", key))
			return entry.value, nil
		}
		// Expired, remove from cache
		c.entries.Delete(key)
	}

	atomic.AddInt64(&c.misses, 1)
	c.logger.Debug("report cache miss", zap.String("key", key))
	return nil, nil
}

// Set stores a report payload in cache
func (c *InMemoryReportCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if value == nil {
		return nil
	}

	if ttl == 0 {
		ttl = c.ttl
	}

	c.entries.Store(key, &reportEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	})
	c.logger.Debug("cached report",
		zap.String("key", key),
		zap.Duration("ttl", ttl))
	return nil
}

// Delete removes a report payload from cache
func (c *InMemoryReportCache) Delete(ctx context.Context, key string) error {
	c.entries.Delete(key)
	return nil
}

// DeleteByPrefix removes every cached payload under the prefix
func (c *InMemoryReportCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	var removed int
	c.entries.Range(func(key, _ any) bool {
		if strings.HasPrefix(key.(string), prefix) {
			c.entries.Delete(key)
			removed++
		}
		return true
	})
	if removed > 0 {
		c.logger.Debug("invalidated cached reports",
			zap.String("prefix", prefix),
			zap.Int("removed", removed))
	}
	return nil
}

// Close releases any resources held by the cache
func (c *InMemoryReportCache) Close() error {
	// Only close once
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// GetStats returns cache statistics
func (c *InMemoryReportCache) GetStats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Count returns the number of entries in the cache
func (c *InMemoryReportCache) Count() int {
	count := 0
	c.entries.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// cleanupExpired periodically removes expired entries from the cache
func (c *InMemoryReportCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.doCleanup()
		}
	}
}

// doCleanup removes expired entries
func (c *InMemoryReportCache) doCleanup() {
	var removed int
	c.entries.Range(func(key, value any) bool {
		if value.(*reportEntry).isExpired() {
			c.entries.Delete(key)
			removed++
		}
		return true
	})
	if removed > 0 {
		c.logger.Debug("cleaned up expired report cache entries",
			zap.Int("removed", removed))
	}
}

// Ensure InMemoryReportCache implements ReportCache
var _ ReportCache = (*InMemoryReportCache)(nil)
