package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryReportCache_GetSet(t *testing.T) {
	c := NewInMemoryReportCache()
	defer c.Close()

	ctx := context.Background()

	t.Run("miss returns nil without error", func(t *testing.T) {
		value, err := c.Get(ctx, "summary")
		assert.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("set then get returns payload", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "summary", []byte(`{"total":70000}`), 0))

		value, err := c.Get(ctx, "summary")
		assert.NoError(t, err)
		assert.Equal(t, []byte(`{"total":70000}`), value)
	})

	t.Run("nil payload is ignored", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "empty", nil, 0))

		value, err := c.Get(ctx, "empty")
		assert.NoError(t, err)
		assert.Nil(t, value)
	})
}

func TestInMemoryReportCache_Expiry(t *testing.T) {
	c := NewInMemoryReportCache()
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "dashboard", []byte(`{}`), 10*time.Millisecond))

	time.Sleep(20 * time.Millisecond)

	value, err := c.Get(ctx, "dashboard")
	assert.NoError(t, err)
	assert.Nil(t, value)
}

func TestInMemoryReportCache_DeleteByPrefix(t *testing.T) {
	c := NewInMemoryReportCache()
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "reports:summary", []byte(`a`), 0))
	require.NoError(t, c.Set(ctx, "reports:dashboard", []byte(`b`), 0))
	require.NoError(t, c.Set(ctx, "other", []byte(`c`), 0))

	require.NoError(t, c.DeleteByPrefix(ctx, "reports:"))

	value, err := c.Get(ctx, "reports:summary")
	assert.NoError(t, err)
	assert.Nil(t, value)

	value, err = c.Get(ctx, "other")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`c`), value)
}

func TestInMemoryReportCache_Stats(t *testing.T) {
	c := NewInMemoryReportCache()
	defer c.Close()

	ctx := context.Background()
	_, _ = c.Get(ctx, "missing")
	require.NoError(t, c.Set(ctx, "hit", []byte(`x`), 0))
	_, _ = c.Get(ctx, "hit")

	hits, misses := c.GetStats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
	assert.Equal(t, 1, c.Count())
}
