package metrics

import (
	"net"
	"strconv"
	"time"
)

// TransportConfig is a read-only snapshot of everything the transport needs to send a batch.
type TransportConfig struct {
	Enabled           bool
	Host              string
	Port              uint16
	Prefix            string
	Suffix            string
	DefaultSampleRate SampleRate
	// Timeout bounds address resolution and each datagram write. Zero selects the network
	// package default.
	Timeout time.Duration
}

// Address returns the host:port of the metrics daemon.
func (c TransportConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(int(c.Port)))
}

// ConfigProvider supplies the current configuration snapshot. It is consulted once per send.
type ConfigProvider interface {
	TransportConfig() TransportConfig
}

// ConfigProviderFunc adapts a function to the ConfigProvider interface.
type ConfigProviderFunc func() TransportConfig

// TransportConfig calls f.
func (f ConfigProviderFunc) TransportConfig() TransportConfig {
	return f()
}
