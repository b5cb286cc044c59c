// Package events decides when metrics are emitted. It hooks the metrics client into an HTTP
// request lifecycle and into logging, gated by the per-category toggles of the current
// configuration. It holds no transport logic of its own.
package events
