package metrics

// Option customizes a single send.
type Option func(*sendOpts)

type sendOpts struct {
	sampleRate SampleRate
	explicit   bool
}

// WithSampleRate overrides the configured default sample rate for one send. The rate must lie in
// (0, 1].
func WithSampleRate(rate float64) Option {
	return func(o *sendOpts) {
		o.sampleRate = SampleRate(rate)
		o.explicit = true
	}
}

func buildSendOpts(opts []Option) sendOpts {
	var o sendOpts
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
