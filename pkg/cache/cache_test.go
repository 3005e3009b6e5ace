package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Hour))

	data, ok, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok, "NullCache should always miss")
	assert.Nil(t, data)

	assert.NoError(t, c.Delete(ctx, "key"))
	assert.NoError(t, c.Close())
}

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "graph:abc")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "graph:abc", []byte(`{"nodes":[]}`), time.Hour))
	data, ok, err := c.Get(ctx, "graph:abc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"nodes":[]}`, string(data))

	require.NoError(t, c.Delete(ctx, "graph:abc"))
	_, ok, _ = c.Get(ctx, "graph:abc")
	assert.False(t, ok)

	// Deleting again is not an error.
	assert.NoError(t, c.Delete(ctx, "graph:abc"))
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "expired entry should miss")
	_, statErr := os.Stat(c.path("k"))
	assert.True(t, os.IsNotExist(statErr), "expired entry should be removed")

	require.NoError(t, c.Set(ctx, "forever", []byte("v"), 0))
	_, ok, _ = c.Get(ctx, "forever")
	assert.True(t, ok, "ttl 0 never expires")
}

func TestFileCacheCorruptEntry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	path := c.path("broken")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	_, ok, err := c.Get(ctx, "broken")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileCacheClear(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	require.NoError(t, err)
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, c.Set(ctx, k, []byte(k), 0))
	}

	n, err := c.Clear()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, dir, c.Dir())

	_, ok, _ := c.Get(ctx, "a")
	assert.False(t, ok)

	n, err = c.Clear()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("test"))
	h2 := Hash([]byte("test"))
	h3 := Hash([]byte("different"))

	assert.Equal(t, h1, h2, "same input should produce same hash")
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64)

	j1, err := HashJSON(map[string][]string{"b": {"1"}, "a": {"2"}})
	require.NoError(t, err)
	j2, err := HashJSON(map[string][]string{"a": {"2"}, "b": {"1"}})
	require.NoError(t, err)
	assert.Equal(t, j1, j2, "map key order must not affect the hash")
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	opts := GraphKeyOpts{Source: "from", Target: "to", Value: "amount"}

	key1 := k.GraphKey("hash", opts)
	key2 := k.GraphKey("hash", opts)
	assert.Equal(t, key1, key2, "GraphKey should be deterministic")
	assert.True(t, strings.HasPrefix(key1, "graph:"), key1)

	opts.IDPolicy = "last"
	assert.NotEqual(t, key1, k.GraphKey("hash", opts), "options must be part of the key")
	assert.NotEqual(t, key1, k.GraphKey("other", GraphKeyOpts{Source: "from", Target: "to", Value: "amount"}))

	exp := k.ExportKey("g", ExportKeyOpts{Format: "svg"})
	assert.True(t, strings.HasPrefix(exp, "export:"), exp)
	assert.NotEqual(t, exp, k.ExportKey("g", ExportKeyOpts{Format: "dot"}))
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "project:energy:")

	opts := GraphKeyOpts{Source: "s", Target: "t", Value: "v"}
	assert.Equal(t, "project:energy:"+inner.GraphKey("h", opts), scoped.GraphKey("h", opts))
	assert.Equal(t, "project:energy:"+inner.ExportKey("h", ExportKeyOpts{Format: "dot"}),
		scoped.ExportKey("h", ExportKeyOpts{Format: "dot"}))
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.GraphKey("h", GraphKeyOpts{})
	assert.True(t, strings.HasPrefix(key, "prefix:graph:"), key)
}

func TestRetryableError(t *testing.T) {
	base := errors.New("boom")

	assert.Nil(t, Retryable(nil))
	assert.False(t, IsRetryable(base))

	wrapped := Retryable(base)
	assert.True(t, IsRetryable(wrapped))
	assert.ErrorIs(t, wrapped, base)
	assert.Equal(t, "boom", wrapped.Error())
}

func TestRetryWithBackoff(t *testing.T) {
	orig := retryDelay
	retryDelay = time.Millisecond
	t.Cleanup(func() { retryDelay = orig })
	ctx := context.Background()

	t.Run("succeeds after retries", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(ctx, func() error {
			calls++
			if calls < 3 {
				return Retryable(errors.New("transient"))
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on permanent error", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(ctx, func() error {
			calls++
			return errors.New("permanent")
		})
		assert.EqualError(t, err, "permanent")
		assert.Equal(t, 1, calls)
	})

	t.Run("gives up after three attempts", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(ctx, func() error {
			calls++
			return Retryable(ErrNetwork)
		})
		assert.ErrorIs(t, err, ErrNetwork)
		assert.Equal(t, 3, calls)
	})
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(errors.New("transient"))
	})
	assert.ErrorIs(t, err, context.Canceled)
}
