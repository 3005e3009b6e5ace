package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sankeyflow/pkg/cache"
	"github.com/matzehuels/sankeyflow/pkg/pipeline"
)

func TestCacheDir(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		xdg := t.TempDir()
		t.Setenv("XDG_CACHE_HOME", xdg)

		dir, err := cacheDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(xdg, appName), dir)
	})

	t.Run("home", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		dir, err := cacheDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".cache", appName), dir)
	})
}

func TestNewCache(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	explicit := t.TempDir()

	tests := []struct {
		name    string
		opts    pipeline.CacheOptions
		noCache bool
		wantDir string // empty for a null cache
	}{
		{name: "no-cache flag", opts: pipeline.CacheOptions{Backend: pipeline.CacheFile}, noCache: true},
		{name: "none backend", opts: pipeline.CacheOptions{Backend: pipeline.CacheNone}},
		{name: "file default dir", opts: pipeline.CacheOptions{Backend: pipeline.CacheFile}, wantDir: filepath.Join(xdg, appName)},
		{name: "file explicit dir", opts: pipeline.CacheOptions{Backend: pipeline.CacheFile, Dir: explicit}, wantDir: explicit},
		{name: "unreachable redis", opts: pipeline.CacheOptions{Backend: pipeline.CacheRedis, RedisAddr: "127.0.0.1:1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCLI(t)
			cc, err := c.newCache(context.Background(), tt.opts, tt.noCache)
			require.NoError(t, err)
			defer cc.Close()

			if tt.wantDir == "" {
				assert.IsType(t, &cache.NullCache{}, cc)
				return
			}
			fc, ok := cc.(*cache.FileCache)
			require.True(t, ok, "got %T", cc)
			assert.Equal(t, tt.wantDir, fc.Dir())
		})
	}
}
