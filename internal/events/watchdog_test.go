package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"statsdemit/internal/log"
	"statsdemit/internal/meta"
)

func TestShouldRoute(t *testing.T) {
	cfg := meta.DefaultConfig().Events
	cfg.WatchdogEvents = true
	level := log.SeverityWarning
	cfg.WatchdogLevel = &level

	assert.True(t, ShouldRoute(cfg, "app", log.SeverityWarning))
	assert.True(t, ShouldRoute(cfg, "app", log.SeverityEmergency))
	assert.False(t, ShouldRoute(cfg, "app", log.SeverityNotice))
	assert.False(t, ShouldRoute(cfg, StatsdChannel, log.SeverityEmergency))

	cfg.WatchdogEvents = false
	assert.False(t, ShouldRoute(cfg, "app", log.SeverityEmergency))
}

func TestWatchdogLogger(t *testing.T) {
	newLogger := func(channel string, configure func(cfg *meta.EventsConfig)) (
		log.Logger,
		*recordingLogger,
		*recordingWatchdogHook,
		*recordingUserHook,
	) {
		inner := &recordingLogger{}
		watchdog := &recordingWatchdogHook{}
		users := &recordingUserHook{}
		provider := eventsProvider(configure)

		return NewWatchdogLogger(channel, inner, provider, watchdog, users), inner, watchdog, users
	}

	t.Run("Messages at or above the threshold are counted", func(t *testing.T) {
		logger, inner, watchdog, _ := newLogger("app", func(cfg *meta.EventsConfig) {
			cfg.WatchdogEvents = true
		})

		logger.Debug("debug")
		logger.Info("info")
		logger.Warn("warn")
		logger.Error("error")

		assert.Equal(t, 4, inner.messages)
		assert.Equal(t, []logEvent{
			{channel: "app", severity: log.SeverityWarning},
			{channel: "app", severity: log.SeverityError},
		}, watchdog.events)
	})

	t.Run("The statsd channel is never counted", func(t *testing.T) {
		logger, inner, watchdog, _ := newLogger(StatsdChannel, func(cfg *meta.EventsConfig) {
			cfg.WatchdogEvents = true
		})

		logger.Error("failed to emit")

		assert.Equal(t, 1, inner.messages)
		assert.Empty(t, watchdog.events)
	})

	t.Run("Disabled watchdog events forward only", func(t *testing.T) {
		logger, inner, watchdog, users := newLogger("app", func(cfg *meta.EventsConfig) {
			cfg.UserEvents = true
		})

		logger.Error("%s alice", LoginMessage)

		assert.Equal(t, 1, inner.messages)
		assert.Empty(t, watchdog.events)
		assert.Zero(t, users.logins)
	})

	t.Run("Login messages drive the user hook", func(t *testing.T) {
		logger, _, watchdog, users := newLogger("user", func(cfg *meta.EventsConfig) {
			cfg.WatchdogEvents = true
			cfg.UserEvents = true
			level := log.SeverityInfo
			cfg.WatchdogLevel = &level
		})

		logger.Info("%s alice", LoginMessage)
		logger.Warn("%s for bob", LoginFailedMessage)
		logger.Info("unrelated")

		assert.Equal(t, 1, users.logins)
		assert.Equal(t, 1, users.failures)
		assert.Len(t, watchdog.events, 3)
	})

	t.Run("Login messages are ignored without user events", func(t *testing.T) {
		logger, _, watchdog, users := newLogger("user", func(cfg *meta.EventsConfig) {
			cfg.WatchdogEvents = true
			level := log.SeverityInfo
			cfg.WatchdogLevel = &level
		})

		logger.Info("%s alice", LoginMessage)

		assert.Zero(t, users.logins)
		assert.Len(t, watchdog.events, 1)
	})
}
