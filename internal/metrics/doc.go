// Package metrics contains the statsd transport and the client operations built on it.
//
// A Transport samples a batch of encoded metrics and writes each survivor as its own UDP datagram
// to the daemon named by the current configuration snapshot. Delivery is best-effort: a socket is
// opened and closed per batch, every network operation is bounded by a short timeout, and network
// failures are logged and swallowed rather than returned. The only errors callers ever see are
// their own mistakes, such as a malformed metric name or an out-of-range sample rate.
//
// Metrics are generated at various points of a request lifecycle, so this package also defines
// hooks: interfaces invoked by the event-producing layer at lifecycle points. Implementations of
// hook interfaces emit through a Client; this is decoupled from the semantics of "hooking" into
// business logic.
package metrics
