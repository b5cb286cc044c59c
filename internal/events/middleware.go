package events

import (
	"math"
	"net/http"
	"runtime"
	"time"

	"statsdemit/internal/data"
	"statsdemit/internal/meta"
	"statsdemit/internal/metrics"
)

// RequestMiddleware reports request lifecycle metrics through the hook. When performance events
// are enabled, a timer is started before the request is served and stored in the request context;
// the execution time and memory high-water mark are reported once the request completes. When
// user events are enabled, the request's session cookie is recorded in the session tracker, and
// the active session count and a page view are reported once the request completes.
//
// The configuration is read once per request.
func RequestMiddleware(provider meta.Provider, hook metrics.RequestHook, sessions *data.SessionTracker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cfg := provider.Config().Events

			if cfg.PerformanceEvents {
				r = r.WithContext(metrics.WithTimer(r.Context(), metrics.NewTimer()))
			}

			next.ServeHTTP(w, r)

			if cfg.UserEvents {
				now := time.Now()

				if cookie, err := r.Cookie(cfg.SessionCookie); err == nil {
					sessions.Touch(cookie.Value, now)
				}

				hook.EmitActiveSessions(sessions.Count(now))
				hook.EmitPageView()
			}

			if cfg.PerformanceEvents {
				hook.EmitPeakMemory(peakMemoryMegabytes())

				if timer, ok := metrics.TimerFromContext(r.Context()); ok {
					hook.EmitExecutionTime(timer.Elapsed())
				}
			}
		})
	}
}

// peakMemoryMegabytes returns the memory obtained from the OS by the runtime, in megabytes rounded
// to two decimals. The runtime never returns memory to the OS accounting in Sys, so it serves as
// a high-water mark.
func peakMemoryMegabytes() float64 {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	return math.Round(float64(stats.Sys)/1024/1024*100) / 100
}
