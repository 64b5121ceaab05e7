package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftformat/internal/config"
	"swiftformat/internal/rules"
)

func TestResultCachePutHasDrop(t *testing.T) {
	c, err := NewResultCache(t.TempDir())
	require.NoError(t, err)

	rs, err := rules.All().Named("indent")
	require.NoError(t, err)
	key := cacheKey([]byte("let x = 1\n"), config.Default(), rs)

	ok, err := c.Has(key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(key, "a.swift", 10))
	ok, err = c.Has(key)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.DropAll())
	ok, err = c.Has(key)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, c.DropAll(), "dropping an empty cache")
}

func TestNilResultCache(t *testing.T) {
	var c *ResultCache
	ok, err := c.Has(Digest{})
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Put(Digest{}, "a.swift", 0))
	assert.NoError(t, c.DropAll())
}

func TestCacheKeyCoversConfiguration(t *testing.T) {
	rs, err := rules.All().Named("indent")
	require.NoError(t, err)
	src := []byte("let x = 1\n")
	base := cacheKey(src, config.Default(), rs)

	assert.Equal(t, base, cacheKey(src, config.Default(), rs))
	assert.NotEqual(t, base, cacheKey([]byte("let x = 2\n"), config.Default(), rs))

	opts := config.Default()
	require.NoError(t, opts.Set("indent", "2"))
	assert.NotEqual(t, base, cacheKey(src, opts, rs))

	opts = config.Default()
	opts.FileInfo.Author = "Ada"
	assert.NotEqual(t, base, cacheKey(src, opts, rs))

	more, err := rules.All().Named("indent", "trailingSpace")
	require.NoError(t, err)
	assert.NotEqual(t, base, cacheKey(src, config.Default(), more))
}
