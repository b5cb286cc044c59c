package protocol

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// reservedChars may not appear in metric names or values since they delimit the wire format.
const reservedChars = ":|\n"

// Observation is a single typed metric reading. It is immutable once constructed; use
// NewObservation or one of the kind-specific constructors, which validate their input.
type Observation struct {
	name  string
	value string
	kind  Kind
}

// NewObservation validates a metric name and formats the value according to the metric kind.
//
// Numeric values of any built-in integer or float type are accepted. Timing values are rounded to
// the nearest whole millisecond, and a time.Duration is converted to milliseconds. String values
// are accepted verbatim for gauges and sets.
func NewObservation(name string, value interface{}, kind Kind) (Observation, error) {
	if err := ValidateName(name); err != nil {
		return Observation{}, err
	}

	formatted, err := formatValue(value, kind)
	if err != nil {
		return Observation{}, errors.Wrapf(err, "name=%s kind=%s", name, kind)
	}

	return Observation{name: name, value: formatted, kind: kind}, nil
}

// NewCounter creates a counter observation with a signed delta.
func NewCounter(name string, delta int64) (Observation, error) {
	return NewObservation(name, delta, Counter)
}

// NewGauge creates a gauge observation.
func NewGauge(name string, value float64) (Observation, error) {
	return NewObservation(name, value, Gauge)
}

// NewTiming creates a timing observation from a number of milliseconds, rounded to the nearest
// whole millisecond.
func NewTiming(name string, milliseconds float64) (Observation, error) {
	return NewObservation(name, milliseconds, Timing)
}

// NewSet fans a collection of set members out into one observation per member. Duplicates are
// preserved; counting distinct members is the daemon's job.
func NewSet(name string, values ...interface{}) ([]Observation, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	observations := make([]Observation, 0, len(values))
	for _, value := range values {
		observation, err := NewObservation(name, value, Set)
		if err != nil {
			return nil, err
		}

		observations = append(observations, observation)
	}

	return observations, nil
}

// Name returns the undecorated metric name.
func (o Observation) Name() string {
	return o.name
}

// Value returns the formatted metric value, without the type tag.
func (o Observation) Value() string {
	return o.value
}

// Kind returns the metric kind.
func (o Observation) Kind() Kind {
	return o.kind
}

// ValidateName checks that a metric name is free of reserved delimiters and has no empty
// dot-separated segment.
func ValidateName(name string) error {
	if name == "" {
		return errors.Wrap(ErrInvalidMetricName, "empty name")
	}

	if strings.ContainsAny(name, reservedChars) {
		return errors.Wrapf(ErrInvalidMetricName, "name contains a reserved character: name=%q", name)
	}

	if HasEmptySegment(name) {
		return errors.Wrapf(ErrInvalidMetricName, "name contains an empty segment: name=%q", name)
	}

	return nil
}

// HasEmptySegment reports whether a dot-separated path has a leading or trailing dot, or two
// consecutive dots.
func HasEmptySegment(path string) bool {
	return strings.HasPrefix(path, ".") || strings.HasSuffix(path, ".") || strings.Contains(path, "..")
}

func formatValue(value interface{}, kind Kind) (string, error) {
	switch v := value.(type) {
	case time.Duration:
		if kind != Timing {
			return "", errors.Wrap(ErrInvalidMetricValue, "durations are only valid for timings")
		}

		return strconv.FormatInt(int64(math.Round(float64(v)/float64(time.Millisecond))), 10), nil
	case string:
		if kind != Gauge && kind != Set {
			return "", errors.Wrapf(ErrInvalidMetricValue, "string value for %s: value=%q", kind, v)
		}

		if v == "" || strings.ContainsAny(v, reservedChars) {
			return "", errors.Wrapf(ErrInvalidMetricValue, "value=%q", v)
		}

		return v, nil
	case fmt.Stringer:
		return formatValue(v.String(), kind)
	}

	number, ok := toFloat(value)
	if !ok {
		return "", errors.Wrapf(ErrInvalidMetricValue, "unsupported value type: type=%T", value)
	}

	if math.IsNaN(number) || math.IsInf(number, 0) {
		return "", errors.Wrapf(ErrInvalidMetricValue, "value=%v", number)
	}

	if kind == Timing {
		rounded := math.Round(number)
		// float64(math.MaxInt64) rounds up to 2^63, which itself overflows an int64.
		if rounded >= math.MaxInt64 || rounded < math.MinInt64 {
			return "", errors.Wrapf(ErrInvalidMetricValue, "timing out of range: value=%v", number)
		}

		return strconv.FormatInt(int64(rounded), 10), nil
	}

	return formatNumber(value), nil
}

// toFloat widens any built-in numeric type to a float64.
func toFloat(value interface{}) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// formatNumber renders a number verbatim: integers in base 10, floats in their shortest decimal
// representation.
func formatNumber(value interface{}) string {
	switch n := value.(type) {
	case int:
		return strconv.FormatInt(int64(n), 10)
	case int8:
		return strconv.FormatInt(int64(n), 10)
	case int16:
		return strconv.FormatInt(int64(n), 10)
	case int32:
		return strconv.FormatInt(int64(n), 10)
	case int64:
		return strconv.FormatInt(n, 10)
	case uint:
		return strconv.FormatUint(uint64(n), 10)
	case uint8:
		return strconv.FormatUint(uint64(n), 10)
	case uint16:
		return strconv.FormatUint(uint64(n), 10)
	case uint32:
		return strconv.FormatUint(uint64(n), 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return ""
	}
}
