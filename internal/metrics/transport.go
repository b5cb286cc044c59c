package metrics

import (
	"statsdemit/internal/log"
	"statsdemit/internal/network"
	"statsdemit/internal/protocol"
)

// Sender transmits a batch of encoded metrics.
type Sender interface {
	Send(entries []protocol.Entry, opts ...Option) error
}

// Transport samples and transmits batches of encoded metrics to a statsd daemon over UDP. It holds
// no connection or queue between sends and is safe for concurrent use.
type Transport struct {
	provider ConfigProvider
	dialer   network.Dialer
	sampler  Sampler
	logger   log.Logger
}

// TransportOpts formalizes transport configuration options. All fields are optional.
type TransportOpts struct {
	// Dialer opens the socket for each send. By default, a UDP dialer bounded by the
	// configuration snapshot's timeout is used.
	Dialer network.Dialer
	// Sampler draws the per-metric sampling decisions. By default, the math/rand global source
	// is used.
	Sampler Sampler
	// Logger is the diagnostic channel for swallowed network failures.
	Logger log.Logger
}

var _ Sender = (*Transport)(nil)

// NewTransport creates a transport reading its configuration from the provider on every send.
func NewTransport(provider ConfigProvider, opts TransportOpts) *Transport {
	if opts.Sampler == nil {
		opts.Sampler = globalSampler{}
	}

	if opts.Logger == nil {
		opts.Logger = log.NewNopLogger()
	}

	return &Transport{
		provider: provider,
		dialer:   opts.Dialer,
		sampler:  opts.Sampler,
		logger:   opts.Logger,
	}
}

// Send decorates, samples, and transmits a batch of entries. Entry names are decorated with the
// configured prefix and suffix. Each entry is sampled independently; survivors of a rate below 1
// are annotated with the rate. Every survivor is written as its own datagram over a socket that is
// opened and closed within the call.
//
// Nothing happens when the transport is disabled. The only error returned is ErrInvalidSampleRate
// for an out-of-range WithSampleRate option; network failures are logged and swallowed.
func (t *Transport) Send(entries []protocol.Entry, opts ...Option) error {
	cfg := t.provider.TransportConfig()
	if !cfg.Enabled {
		return nil
	}

	rate, err := t.resolveSampleRate(cfg, buildSendOpts(opts))
	if err != nil {
		return err
	}

	datagrams := t.sample(cfg, entries, rate)
	if len(datagrams) == 0 {
		return nil
	}

	t.transmit(cfg, datagrams)

	return nil
}

// resolveSampleRate picks the explicit rate if one was given, else the configured default.
func (t *Transport) resolveSampleRate(cfg TransportConfig, o sendOpts) (SampleRate, error) {
	if o.explicit {
		if err := o.sampleRate.Validate(); err != nil {
			return 0, err
		}

		return o.sampleRate, nil
	}

	if err := cfg.DefaultSampleRate.Validate(); err != nil {
		// Configuration is validated before it reaches the transport; a provider that skips
		// validation gets unsampled delivery.
		t.logger.Warn("transport: ignoring invalid default sample rate: err=%v", err)
		return 1, nil
	}

	return cfg.DefaultSampleRate, nil
}

// sample returns the datagrams that survive an independent draw per entry.
func (t *Transport) sample(cfg TransportConfig, entries []protocol.Entry, rate SampleRate) []string {
	datagrams := make([]string, 0, len(entries))

	for _, entry := range entries {
		entry.Name = protocol.DecorateName(entry.Name, cfg.Prefix, cfg.Suffix)

		if rate < 1 {
			if t.sampler.Float64() > float64(rate) {
				continue
			}

			entry.Value += "|@" + rate.String()
		}

		datagrams = append(datagrams, entry.Datagram())
	}

	return datagrams
}

// transmit writes each datagram over a freshly dialed socket. Failures are logged, never returned.
func (t *Transport) transmit(cfg TransportConfig, datagrams []string) {
	dialer := t.dialer
	if dialer == nil {
		dialer = network.NewUDPDialer(cfg.Timeout)
	}

	addr := cfg.Address()

	conn, err := dialer.Dial(addr)
	if err != nil {
		t.logger.Warn("transport: dropping datagrams: count=%d addr=%s err=%v", len(datagrams), addr, err)
		return
	}

	defer func() {
		if err := conn.Close(); err != nil {
			t.logger.Debug("transport: error closing socket: addr=%s err=%v", addr, err)
		}
	}()

	for _, datagram := range datagrams {
		if _, err := conn.Write([]byte(datagram)); err != nil {
			t.logger.Debug("transport: dropping datagram: datagram=%q addr=%s err=%v", datagram, addr, err)
		}
	}

	t.logger.Debug("transport: sent datagrams: count=%d addr=%s", len(datagrams), addr)
}
