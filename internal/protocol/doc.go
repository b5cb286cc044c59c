// Package protocol concerns itself with the statsd line protocol. It turns typed metric
// observations into wire fragments, decorates metric names with the configured prefix and suffix,
// and parses datagrams back into their components. Nothing in this package performs I/O.
package protocol
