package distcache_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/strollkit/strollkit/distcache"
	"github.com/stretchr/testify/require"
)

// caches under test share one behavioral contract, so run the same suite
// against every implementation.
func runCacheSuite(t *testing.T, open func(t *testing.T) distcache.Cache) {
	t.Helper()
	ctx := context.Background()

	t.Run("miss then hit", func(t *testing.T) {
		c := open(t)
		defer c.Close()

		_, ok, err := c.Get(ctx, 1, 2)
		require.NoError(t, err)
		require.False(t, ok)

		require.NoError(t, c.SetBatch(ctx, []distcache.Entry{
			{From: 1, To: 2, Meters: 321.5},
			{From: 2, To: 1, Meters: 321.5},
		}))

		d, ok, err := c.Get(ctx, 1, 2)
		require.NoError(t, err)
		require.True(t, ok)
		require.InDelta(t, 321.5, d, 1e-9)
	})

	t.Run("overwrite", func(t *testing.T) {
		c := open(t)
		defer c.Close()

		require.NoError(t, c.SetBatch(ctx, []distcache.Entry{{From: 7, To: 8, Meters: 10}}))
		require.NoError(t, c.SetBatch(ctx, []distcache.Entry{{From: 7, To: 8, Meters: 20}}))

		d, ok, err := c.Get(ctx, 7, 8)
		require.NoError(t, err)
		require.True(t, ok)
		require.InDelta(t, 20.0, d, 1e-9)
	})

	t.Run("ordered pairs are distinct", func(t *testing.T) {
		c := open(t)
		defer c.Close()

		require.NoError(t, c.SetBatch(ctx, []distcache.Entry{{From: 3, To: 4, Meters: 99}}))

		_, ok, err := c.Get(ctx, 4, 3)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("clear", func(t *testing.T) {
		c := open(t)
		defer c.Close()

		require.NoError(t, c.SetBatch(ctx, []distcache.Entry{{From: 1, To: 2, Meters: 5}}))
		require.NoError(t, c.Clear(ctx))

		_, ok, err := c.Get(ctx, 1, 2)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("closed", func(t *testing.T) {
		c := open(t)
		require.NoError(t, c.Close())

		err := c.SetBatch(ctx, []distcache.Entry{{From: 1, To: 2, Meters: 5}})
		require.Error(t, err)
	})
}

func TestMemoryCache(t *testing.T) {
	runCacheSuite(t, func(t *testing.T) distcache.Cache {
		return distcache.NewMemory()
	})
}

func TestSQLiteCache(t *testing.T) {
	runCacheSuite(t, func(t *testing.T) distcache.Cache {
		c, err := distcache.OpenSQLite(filepath.Join(t.TempDir(), "pairs.db"))
		require.NoError(t, err)

		return c
	})
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "pairs.db")

	c, err := distcache.OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, c.SetBatch(ctx, []distcache.Entry{{From: 11, To: 12, Meters: 777}}))
	require.NoError(t, c.Close())

	c, err = distcache.OpenSQLite(path)
	require.NoError(t, err)
	defer c.Close()

	d, ok, err := c.Get(ctx, 11, 12)
	require.NoError(t, err)
	require.True(t, ok)
	require.InDelta(t, 777.0, d, 1e-9)
}
