package events

import (
	"fmt"
	"strings"

	"statsdemit/internal/log"
	"statsdemit/internal/meta"
	"statsdemit/internal/metrics"
)

const (
	// StatsdChannel is the log channel of the metrics pipeline itself. Its messages are never
	// routed to metrics, so that diagnostics about emitting metrics cannot emit more metrics.
	StatsdChannel = "statsd"

	// LoginMessage marks a log message reporting a successful login.
	LoginMessage = "Session opened for"
	// LoginFailedMessage marks a log message reporting a failed login.
	LoginFailedMessage = "Login attempt failed"
)

// ShouldRoute decides whether a log message on a channel at a severity is reported as a metric:
// watchdog events must be enabled, the channel must not be the metrics pipeline's own, and the
// severity must be at least as severe as the configured threshold.
func ShouldRoute(cfg *meta.EventsConfig, channel string, severity log.Severity) bool {
	if channel == StatsdChannel || !cfg.WatchdogEvents {
		return false
	}

	return severity.AtLeast(*cfg.WatchdogLevel)
}

// WatchdogLogger is a log.Logger decorator for a named channel. Every message is forwarded to the
// inner logger, and messages selected by ShouldRoute are additionally counted by channel and
// severity. Routed messages announcing a login success or failure also drive the user hook, when
// user events are enabled.
type WatchdogLogger struct {
	channel  string
	inner    log.Logger
	provider meta.Provider
	watchdog metrics.WatchdogHook
	users    metrics.UserHook
}

// NewWatchdogLogger creates a WatchdogLogger for the channel.
func NewWatchdogLogger(
	channel string,
	inner log.Logger,
	provider meta.Provider,
	watchdog metrics.WatchdogHook,
	users metrics.UserHook,
) log.Logger {
	return &WatchdogLogger{
		channel:  channel,
		inner:    inner,
		provider: provider,
		watchdog: watchdog,
		users:    users,
	}
}

// Debug logs a debug message and routes it.
func (l *WatchdogLogger) Debug(format string, v ...interface{}) {
	l.inner.Debug(format, v...)
	l.route(log.Debug, format, v)
}

// Info logs an informational message and routes it.
func (l *WatchdogLogger) Info(format string, v ...interface{}) {
	l.inner.Info(format, v...)
	l.route(log.Info, format, v)
}

// Warn logs a warning message and routes it.
func (l *WatchdogLogger) Warn(format string, v ...interface{}) {
	l.inner.Warn(format, v...)
	l.route(log.Warn, format, v)
}

// Error logs an error message and routes it.
func (l *WatchdogLogger) Error(format string, v ...interface{}) {
	l.inner.Error(format, v...)
	l.route(log.Error, format, v)
}

// Level reads the inner logger's level.
func (l *WatchdogLogger) Level() log.Level {
	return l.inner.Level()
}

func (l *WatchdogLogger) route(level log.Level, format string, v []interface{}) {
	cfg := l.provider.Config().Events
	severity := level.Severity()

	if !ShouldRoute(cfg, l.channel, severity) {
		return
	}

	if cfg.UserEvents {
		message := fmt.Sprintf(format, v...)

		if strings.Contains(message, LoginMessage) {
			l.users.EmitLogin()
		}

		if strings.Contains(message, LoginFailedMessage) {
			l.users.EmitLoginFailure()
		}
	}

	l.watchdog.EmitLogEvent(l.channel, severity)
}
