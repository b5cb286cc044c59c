package metrics

import (
	"context"
	"time"

	"lib.kevinlin.info/aperture/lib"
)

// timerContextKey is the context key under which a request-scoped Timer is stored.
type timerContextKey struct{}

// Timer is a simple abstraction to help measure execution durations.
type Timer struct {
	elapsed func() time.Duration
}

// NewTimer creates and starts an execution timer.
func NewTimer() *Timer {
	stopwatch := lib.NewStopwatch()

	return &Timer{
		elapsed: stopwatch.Elapsed,
	}
}

// Elapsed returns the amount of time that has elapsed since the timer has started.
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed()
}

// WithTimer returns a copy of the context carrying the timer, so that a timer started when a
// request begins can be read when it ends.
func WithTimer(ctx context.Context, t *Timer) context.Context {
	return context.WithValue(ctx, timerContextKey{}, t)
}

// TimerFromContext retrieves the timer stored by WithTimer, if any.
func TimerFromContext(ctx context.Context) (*Timer, bool) {
	t, ok := ctx.Value(timerContextKey{}).(*Timer)
	return t, ok && t != nil
}
