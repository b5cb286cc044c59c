package metrics

import (
	"math/rand"
	"strconv"
	"sync"

	"github.com/pkg/errors"
)

// ErrInvalidSampleRate is returned when a sample rate lies outside (0, 1].
var ErrInvalidSampleRate = errors.New("metrics: invalid sample rate")

// SampleRate is the probability in (0, 1] that a metric is transmitted.
type SampleRate float64

// Validate checks that the rate lies in (0, 1].
func (r SampleRate) Validate() error {
	if !(r > 0 && r <= 1) {
		return errors.Wrapf(ErrInvalidSampleRate, "rate=%v", float64(r))
	}

	return nil
}

// String formats the rate in its shortest decimal representation, as annotated on the wire.
func (r SampleRate) String() string {
	return strconv.FormatFloat(float64(r), 'f', -1, 64)
}

// Sampler is a source of uniformly distributed draws in [0, 1). Implementations must be safe for
// concurrent use.
type Sampler interface {
	Float64() float64
}

// globalSampler draws from the math/rand top-level source, which is safe for concurrent use and
// randomly seeded.
type globalSampler struct{}

func (globalSampler) Float64() float64 {
	return rand.Float64()
}

// seededSampler is a deterministic, mutex-guarded sampler.
type seededSampler struct {
	mutex sync.Mutex
	rng   *rand.Rand
}

// NewSeededSampler creates a deterministic sampler, for reproducible sampling decisions.
func NewSeededSampler(seed int64) Sampler {
	return &seededSampler{rng: rand.New(rand.NewSource(seed))}
}

func (s *seededSampler) Float64() float64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.rng.Float64()
}
