package metrics

import (
	"time"

	"statsdemit/internal/log"
)

// Metric names emitted by the statsd hook implementations, before prefix and suffix decoration.
const (
	PageViewMetric       = "user_events.page_view"
	ActiveSessionsMetric = "user_events.active_sessions"
	LoginMetric          = "user_events.successful_login"
	LoginFailureMetric   = "user_events.failed_login"
	PeakMemoryMetric     = "performance_events.peak_memory"
	ExecutionTimeMetric  = "performance_events.execution_time"

	watchdogTypePrefix     = "watchdog.type."
	watchdogSeverityPrefix = "watchdog.severity."
)

// RequestHook is a metrics hook interface for reporting events that occur at the end of a request
// lifecycle.
type RequestHook interface {
	// EmitPageView reports that a request was served.
	EmitPageView()

	// EmitActiveSessions reports the number of sessions recently seen.
	EmitActiveSessions(count int)

	// EmitPeakMemory reports the process memory high-water mark, in megabytes.
	EmitPeakMemory(megabytes float64)

	// EmitExecutionTime reports the total time spent serving a request.
	EmitExecutionTime(latency time.Duration)
}

// UserHook is a metrics hook interface for reporting authentication events.
type UserHook interface {
	// EmitLogin reports a successful login.
	EmitLogin()

	// EmitLoginFailure reports a failed login attempt.
	EmitLoginFailure()
}

// WatchdogHook is a metrics hook interface for reporting log events.
type WatchdogHook interface {
	// EmitLogEvent reports that a message was logged on a channel at a severity.
	EmitLogEvent(channel string, severity log.Severity)
}

// StatsdRequestHook is an implementation of RequestHook that outputs metrics to statsd.
type StatsdRequestHook struct {
	client *Client
	logger log.Logger
}

// StatsdUserHook is an implementation of UserHook that outputs metrics to statsd.
type StatsdUserHook struct {
	client *Client
	logger log.Logger
}

// StatsdWatchdogHook is an implementation of WatchdogHook that outputs metrics to statsd.
type StatsdWatchdogHook struct {
	client *Client
	logger log.Logger
}

// NoopRequestHook implements the RequestHook interface but noops on all emissions.
type NoopRequestHook struct{}

// NoopUserHook implements the UserHook interface but noops on all emissions.
type NoopUserHook struct{}

// NoopWatchdogHook implements the WatchdogHook interface but noops on all emissions.
type NoopWatchdogHook struct{}

// NewStatsdRequestHook creates a RequestHook emitting through the client. Caller errors, which can
// only arise from misconfigured names, are logged.
func NewStatsdRequestHook(client *Client, logger log.Logger) RequestHook {
	return &StatsdRequestHook{client: client, logger: logger}
}

// EmitPageView statsd implementation
func (h *StatsdRequestHook) EmitPageView() {
	logEmitError(h.logger, PageViewMetric, h.client.IncrementCounter(PageViewMetric))
}

// EmitActiveSessions statsd implementation
func (h *StatsdRequestHook) EmitActiveSessions(count int) {
	logEmitError(h.logger, ActiveSessionsMetric, h.client.RecordGauge(ActiveSessionsMetric, float64(count)))
}

// EmitPeakMemory statsd implementation
func (h *StatsdRequestHook) EmitPeakMemory(megabytes float64) {
	logEmitError(h.logger, PeakMemoryMetric, h.client.RecordGauge(PeakMemoryMetric, megabytes))
}

// EmitExecutionTime statsd implementation
func (h *StatsdRequestHook) EmitExecutionTime(latency time.Duration) {
	logEmitError(h.logger, ExecutionTimeMetric, h.client.RecordDuration(ExecutionTimeMetric, latency))
}

// NewNoopRequestHook creates a noop implementation of RequestHook.
func NewNoopRequestHook() RequestHook {
	return &NoopRequestHook{}
}

// EmitPageView noops.
func (h *NoopRequestHook) EmitPageView() {}

// EmitActiveSessions noops.
func (h *NoopRequestHook) EmitActiveSessions(count int) {}

// EmitPeakMemory noops.
func (h *NoopRequestHook) EmitPeakMemory(megabytes float64) {}

// EmitExecutionTime noops.
func (h *NoopRequestHook) EmitExecutionTime(latency time.Duration) {}

// NewStatsdUserHook creates a UserHook emitting through the client.
func NewStatsdUserHook(client *Client, logger log.Logger) UserHook {
	return &StatsdUserHook{client: client, logger: logger}
}

// EmitLogin statsd implementation
func (h *StatsdUserHook) EmitLogin() {
	logEmitError(h.logger, LoginMetric, h.client.IncrementCounter(LoginMetric))
}

// EmitLoginFailure statsd implementation
func (h *StatsdUserHook) EmitLoginFailure() {
	logEmitError(h.logger, LoginFailureMetric, h.client.IncrementCounter(LoginFailureMetric))
}

// NewNoopUserHook creates a noop implementation of UserHook.
func NewNoopUserHook() UserHook {
	return &NoopUserHook{}
}

// EmitLogin noops.
func (h *NoopUserHook) EmitLogin() {}

// EmitLoginFailure noops.
func (h *NoopUserHook) EmitLoginFailure() {}

// NewStatsdWatchdogHook creates a WatchdogHook emitting through the client.
func NewStatsdWatchdogHook(client *Client, logger log.Logger) WatchdogHook {
	return &StatsdWatchdogHook{client: client, logger: logger}
}

// EmitLogEvent statsd implementation. The channel and severity counters are sent as one batch.
func (h *StatsdWatchdogHook) EmitLogEvent(channel string, severity log.Severity) {
	names := []string{
		watchdogTypePrefix + channel,
		watchdogSeverityPrefix + severity.Label(),
	}

	logEmitError(h.logger, names[0], h.client.UpdateCounters(names, 1))
}

// NewNoopWatchdogHook creates a noop implementation of WatchdogHook.
func NewNoopWatchdogHook() WatchdogHook {
	return &NoopWatchdogHook{}
}

// EmitLogEvent noops.
func (h *NoopWatchdogHook) EmitLogEvent(channel string, severity log.Severity) {}

// logEmitError logs a caller error returned by a client operation, if any.
func logEmitError(logger log.Logger, metric string, err error) {
	if err != nil {
		logger.Error("metrics: failed to emit metric: metric=%s err=%v", metric, err)
	}
}
