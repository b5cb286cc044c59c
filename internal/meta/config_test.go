package meta

import (
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statsdemit/internal/log"
	"statsdemit/internal/metrics"
	"statsdemit/internal/network"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Statsd.Enabled)
	assert.Equal(t, Port(DefaultPort), *cfg.Statsd.Port)
	assert.Equal(t, DefaultSampleRate, *cfg.Statsd.SampleRate)
	assert.Equal(t, network.DefaultTimeout, cfg.Statsd.Timeout)
	assert.Equal(t, DefaultWatchdogLevel, *cfg.Events.WatchdogLevel)
	assert.Equal(t, DefaultSessionCookie, cfg.Events.SessionCookie)
	assert.Equal(t, DefaultSessionWindow, cfg.Events.SessionWindow)
	assert.Equal(t, DefaultServerAddress, cfg.Server.Address)
}

func TestParseConfigBytes(t *testing.T) {
	t.Run("Full document", func(t *testing.T) {
		cfg, err := ParseConfigBytes([]byte(`
application:
  sentry_dsn: ""
statsd:
  enabled: true
  host: " statsd.local "
  port: 9125
  prefix: "myapp."
  suffix: ".prod"
  sample_rate: 0.25
  timeout: 250ms
events:
  user_events: true
  performance_events: true
  watchdog_events: true
  watchdog_level: error
  session_cookie: sid
  session_window: 30m
server:
  addr: 0.0.0.0:9000
`))
		require.NoError(t, err)

		assert.Equal(t, metrics.TransportConfig{
			Enabled:           true,
			Host:              "statsd.local",
			Port:              9125,
			Prefix:            "myapp",
			Suffix:            "prod",
			DefaultSampleRate: 0.25,
			Timeout:           250 * time.Millisecond,
		}, cfg.TransportConfig())

		assert.True(t, cfg.Events.UserEvents)
		assert.True(t, cfg.Events.PerformanceEvents)
		assert.True(t, cfg.Events.WatchdogEvents)
		assert.Equal(t, log.SeverityError, *cfg.Events.WatchdogLevel)
		assert.Equal(t, "sid", cfg.Events.SessionCookie)
		assert.Equal(t, 30*time.Minute, cfg.Events.SessionWindow)
		assert.Equal(t, "0.0.0.0:9000", cfg.Server.Address)
	})

	t.Run("Empty document", func(t *testing.T) {
		cfg, err := ParseConfigBytes(nil)
		require.NoError(t, err)

		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("Explicit ports are kept", func(t *testing.T) {
		for doc, port := range map[string]uint16{
			"statsd:\n  port: 1\n":     1,
			"statsd:\n  port: 65535\n": 65535,
			"statsd:\n  port:\n":       DefaultPort,
		} {
			cfg, err := ParseConfigBytes([]byte(doc))
			require.NoError(t, err, doc)

			assert.Equal(t, port, cfg.TransportConfig().Port, doc)
		}
	})

	t.Run("Numeric watchdog level", func(t *testing.T) {
		cfg, err := ParseConfigBytes([]byte("events:\n  watchdog_level: 2\n"))
		require.NoError(t, err)

		assert.Equal(t, log.SeverityCritical, *cfg.Events.WatchdogLevel)
	})

	t.Run("Disabled transport may omit the host", func(t *testing.T) {
		cfg, err := ParseConfigBytes([]byte("statsd:\n  enabled: false\n"))
		require.NoError(t, err)

		assert.Equal(t, "", cfg.Statsd.Host)
		assert.False(t, cfg.TransportConfig().Enabled)
	})

	invalid := map[string]string{
		"zero sample rate":      "statsd:\n  sample_rate: 0\n",
		"negative sample rate":  "statsd:\n  sample_rate: -0.5\n",
		"sample rate above one": "statsd:\n  sample_rate: 1.5\n",
		"port out of range":     "statsd:\n  port: 70000\n",
		"negative port":         "statsd:\n  port: -1\n",
		"zero port":             "statsd:\n  port: 0\n",
		"fractional port":       "statsd:\n  port: 0.5\n",
		"quoted port":           "statsd:\n  port: \"8125\"\n",
		"port mapping":          "statsd:\n  port:\n    value: 8125\n",
		"empty prefix segment":  "statsd:\n  prefix: \"a..b\"\n",
		"empty suffix segment":  "statsd:\n  suffix: \"c..d\"\n",
		"enabled without host":  "statsd:\n  enabled: true\n  host: \"  \"\n",
		"delimiter in prefix":   "statsd:\n  prefix: \"my:app\"\n",
		"delimiter in suffix":   "statsd:\n  suffix: \"a|b\"\n",
		"unknown severity":      "events:\n  watchdog_level: loud\n",
		"malformed yaml":        "statsd: [\n",
	}

	for name, doc := range invalid {
		doc := doc

		t.Run("Rejects "+name, func(t *testing.T) {
			_, err := ParseConfigBytes([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestParseConfig(t *testing.T) {
	t.Run("Reads from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, ioutil.WriteFile(path, []byte("statsd:\n  enabled: true\n  host: localhost\n"), 0o600))

		cfg, err := ParseConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "localhost:8125", cfg.TransportConfig().Address())
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := ParseConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}
