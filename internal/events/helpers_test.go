package events

import (
	"sync"
	"time"

	"statsdemit/internal/log"
	"statsdemit/internal/meta"
)

type recordingRequestHook struct {
	mutex          sync.Mutex
	pageViews      int
	activeSessions []int
	peakMemory     []float64
	executionTimes []time.Duration
}

func (h *recordingRequestHook) EmitPageView() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.pageViews++
}

func (h *recordingRequestHook) EmitActiveSessions(count int) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.activeSessions = append(h.activeSessions, count)
}

func (h *recordingRequestHook) EmitPeakMemory(megabytes float64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.peakMemory = append(h.peakMemory, megabytes)
}

func (h *recordingRequestHook) EmitExecutionTime(latency time.Duration) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.executionTimes = append(h.executionTimes, latency)
}

type recordingUserHook struct {
	logins   int
	failures int
}

func (h *recordingUserHook) EmitLogin() { h.logins++ }

func (h *recordingUserHook) EmitLoginFailure() { h.failures++ }

type logEvent struct {
	channel  string
	severity log.Severity
}

type recordingWatchdogHook struct {
	events []logEvent
}

func (h *recordingWatchdogHook) EmitLogEvent(channel string, severity log.Severity) {
	h.events = append(h.events, logEvent{channel: channel, severity: severity})
}

// recordingLogger counts messages forwarded to it.
type recordingLogger struct {
	log.NopLogger
	messages int
}

func (l *recordingLogger) Debug(format string, v ...interface{}) { l.messages++ }
func (l *recordingLogger) Info(format string, v ...interface{})  { l.messages++ }
func (l *recordingLogger) Warn(format string, v ...interface{})  { l.messages++ }
func (l *recordingLogger) Error(format string, v ...interface{}) { l.messages++ }

func eventsProvider(configure func(cfg *meta.EventsConfig)) meta.Provider {
	cfg := meta.DefaultConfig()
	configure(cfg.Events)

	return meta.NewStaticProvider(cfg)
}
