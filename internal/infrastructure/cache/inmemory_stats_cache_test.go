package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStatsCache(t *testing.T) {
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		c := NewInMemoryStatsCache()
		defer c.Close()

		require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

		value, ok, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("v"), value)
		assert.Equal(t, 1, c.Size())
	})

	t.Run("missing key", func(t *testing.T) {
		c := NewInMemoryStatsCache()
		defer c.Close()

		_, ok, err := c.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expired entry is not returned", func(t *testing.T) {
		c := NewInMemoryStatsCache()
		defer c.Close()

		require.NoError(t, c.Set(ctx, "k", []byte("v"), -time.Second))

		_, ok, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		c := NewInMemoryStatsCache()
		defer c.Close()

		require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
		require.NoError(t, c.Delete(ctx, "k"))

		_, ok, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 0, c.Size())
	})

	t.Run("close is idempotent", func(t *testing.T) {
		c := NewInMemoryStatsCache()
		assert.NoError(t, c.Close())
		assert.NoError(t, c.Close())
	})
}
