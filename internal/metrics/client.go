package metrics

import (
	"time"

	"statsdemit/internal/protocol"
)

// Client is the public surface external callers use to emit metrics. Each operation builds its
// observations, encodes them, and hands them to the sender as one batch.
//
// Operations return only caller errors: an invalid metric name or value, or an out-of-range
// sample rate. Transmission failures are never reported.
type Client struct {
	sender Sender
}

// NewClient creates a client emitting through the specified sender, typically a *Transport.
func NewClient(sender Sender) *Client {
	return &Client{sender: sender}
}

// IncrementCounter increments a counter by one.
func (c *Client) IncrementCounter(name string, opts ...Option) error {
	return c.UpdateCounters([]string{name}, 1, opts...)
}

// DecrementCounter decrements a counter by one.
func (c *Client) DecrementCounter(name string, opts ...Option) error {
	return c.UpdateCounters([]string{name}, -1, opts...)
}

// UpdateCounters applies the same signed delta to each named counter, in a single batch.
func (c *Client) UpdateCounters(names []string, delta int64, opts ...Option) error {
	observations := make([]protocol.Observation, 0, len(names))

	for _, name := range names {
		observation, err := protocol.NewCounter(name, delta)
		if err != nil {
			return err
		}

		observations = append(observations, observation)
	}

	return c.send(observations, opts)
}

// RecordGauge records the current value of a gauge.
func (c *Client) RecordGauge(name string, value float64, opts ...Option) error {
	observation, err := protocol.NewGauge(name, value)
	if err != nil {
		return err
	}

	return c.send([]protocol.Observation{observation}, opts)
}

// RecordTiming records a duration in milliseconds, rounded to the nearest whole millisecond.
func (c *Client) RecordTiming(name string, milliseconds float64, opts ...Option) error {
	observation, err := protocol.NewTiming(name, milliseconds)
	if err != nil {
		return err
	}

	return c.send([]protocol.Observation{observation}, opts)
}

// RecordDuration records a duration as a timing.
func (c *Client) RecordDuration(name string, duration time.Duration, opts ...Option) error {
	observation, err := protocol.NewObservation(name, duration, protocol.Timing)
	if err != nil {
		return err
	}

	return c.send([]protocol.Observation{observation}, opts)
}

// RecordSet records every value as a member of the set. Each value is sent as its own datagram;
// duplicates are not collapsed.
func (c *Client) RecordSet(name string, values []interface{}, opts ...Option) error {
	observations, err := protocol.NewSet(name, values...)
	if err != nil {
		return err
	}

	return c.send(observations, opts)
}

func (c *Client) send(observations []protocol.Observation, opts []Option) error {
	if len(observations) == 0 {
		return nil
	}

	return c.sender.Send(protocol.EncodeAll(observations), opts...)
}
