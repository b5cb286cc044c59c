package protocol

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidMetricName is returned when a metric name is empty or contains a character
	// reserved by the wire protocol.
	ErrInvalidMetricName = errors.New("protocol: invalid metric name")
	// ErrInvalidMetricValue is returned when a metric value cannot be represented on the wire.
	ErrInvalidMetricValue = errors.New("protocol: invalid metric value")
	// ErrMalformedDatagram is returned when a datagram does not follow the wire format.
	ErrMalformedDatagram = errors.New("protocol: malformed datagram")
)
