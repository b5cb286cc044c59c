package meta

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statsdemit/internal/log"
)

func writeConfig(t *testing.T, path string, contents string) {
	t.Helper()
	require.NoError(t, ioutil.WriteFile(path, []byte(contents), 0o600))
}

// replaceConfig swaps the file in with a rename so a watcher never observes a truncated file.
func replaceConfig(t *testing.T, path string, contents string) {
	t.Helper()

	tmp := filepath.Join(t.TempDir(), "config.yaml.tmp")
	writeConfig(t, tmp, contents)
	require.NoError(t, os.Rename(tmp, path))
}

func TestStaticProvider(t *testing.T) {
	cfg := DefaultConfig()
	provider := NewStaticProvider(cfg)

	assert.Same(t, cfg, provider.Config())
	assert.Equal(t, cfg.TransportConfig(), provider.TransportConfig())
}

func TestFileProvider(t *testing.T) {
	t.Run("Invalid initial configuration", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		writeConfig(t, path, "statsd:\n  sample_rate: 2\n")

		_, err := NewFileProvider(path, log.NewNopLogger())
		assert.Error(t, err)
	})

	t.Run("Reload commits only valid configurations", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		writeConfig(t, path, "statsd:\n  enabled: true\n  host: localhost\n")

		provider, err := NewFileProvider(path, log.NewNopLogger())
		require.NoError(t, err)
		assert.True(t, provider.TransportConfig().Enabled)

		writeConfig(t, path, "statsd:\n  enabled: false\n")
		require.NoError(t, provider.Reload())
		assert.False(t, provider.TransportConfig().Enabled)

		writeConfig(t, path, "statsd:\n  port: 0.5\n")
		assert.Error(t, provider.Reload())
		assert.False(t, provider.TransportConfig().Enabled)
	})

	t.Run("Watch picks up changes", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		writeConfig(t, path, "statsd:\n  prefix: before\n")

		provider, err := NewFileProvider(path, log.NewNopLogger())
		require.NoError(t, err)

		var (
			mutex sync.Mutex
			errs  []error
		)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)

		go func() {
			done <- provider.Watch(ctx, func(err error) {
				mutex.Lock()
				defer mutex.Unlock()
				errs = append(errs, err)
			})
		}()

		// The watcher is registered asynchronously, so keep rewriting until a change is seen.
		assert.Eventually(t, func() bool {
			replaceConfig(t, path, "statsd:\n  prefix: after\n")
			return provider.TransportConfig().Prefix == "after"
		}, 5*time.Second, 20*time.Millisecond)

		replaceConfig(t, path, "statsd:\n  sample_rate: 3\n")
		assert.Eventually(t, func() bool {
			mutex.Lock()
			defer mutex.Unlock()
			return len(errs) > 0
		}, 5*time.Second, 20*time.Millisecond)
		assert.Equal(t, "after", provider.TransportConfig().Prefix)

		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("watch did not stop")
		}
	})
}
