//go:generate go run golang.org/x/tools/cmd/stringer -type=Kind -linecomment=true

package protocol

// Kind is the type of a metric, which determines its type tag on the wire.
type Kind int

const (
	// Counter is incremented or decremented by a signed delta.
	Counter Kind = iota // counter
	// Gauge is a point-in-time value.
	Gauge // gauge
	// Timing is a duration in milliseconds.
	Timing // timing
	// Set counts distinct values seen by the daemon within a flush interval.
	Set // set
)

// Tag returns the wire type tag of the kind.
func (k Kind) Tag() string {
	switch k {
	case Counter:
		return "c"
	case Gauge:
		return "g"
	case Timing:
		return "ms"
	case Set:
		return "s"
	default:
		return ""
	}
}

// ParseKind looks up a Kind by its wire type tag.
func ParseKind(tag string) (Kind, bool) {
	switch tag {
	case "c":
		return Counter, true
	case "g":
		return Gauge, true
	case "ms":
		return Timing, true
	case "s":
		return Set, true
	default:
		return Counter, false
	}
}
