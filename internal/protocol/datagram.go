package protocol

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Datagram is a parsed wire-format metric.
type Datagram struct {
	Name  string
	Value string
	Kind  Kind
	// SampleRate is the annotated sample rate, or 1 if the datagram was not sampled.
	SampleRate float64
}

// ParseDatagram parses a single "<name>:<value>|<type>[|@<rate>]" line.
func ParseDatagram(raw string) (Datagram, error) {
	raw = strings.TrimRight(raw, "\r\n")

	sep := strings.IndexByte(raw, ':')
	if sep <= 0 {
		return Datagram{}, errors.Wrapf(ErrMalformedDatagram, "missing name: datagram=%q", raw)
	}

	name, rest := raw[:sep], raw[sep+1:]

	fields := strings.Split(rest, "|")
	if len(fields) < 2 || len(fields) > 3 || fields[0] == "" {
		return Datagram{}, errors.Wrapf(ErrMalformedDatagram, "bad field count: datagram=%q", raw)
	}

	kind, ok := ParseKind(fields[1])
	if !ok {
		return Datagram{}, errors.Wrapf(ErrMalformedDatagram, "unknown type: datagram=%q", raw)
	}

	datagram := Datagram{
		Name:       name,
		Value:      fields[0],
		Kind:       kind,
		SampleRate: 1,
	}

	if len(fields) == 3 {
		if !strings.HasPrefix(fields[2], "@") {
			return Datagram{}, errors.Wrapf(ErrMalformedDatagram, "bad sample rate: datagram=%q", raw)
		}

		rate, err := strconv.ParseFloat(fields[2][1:], 64)
		if err != nil || rate <= 0 || rate > 1 {
			return Datagram{}, errors.Wrapf(ErrMalformedDatagram, "bad sample rate: datagram=%q", raw)
		}

		datagram.SampleRate = rate
	}

	return datagram, nil
}

// String renders the datagram back into its wire form.
func (d Datagram) String() string {
	s := d.Name + ":" + d.Value + "|" + d.Kind.Tag()
	if d.SampleRate < 1 {
		s += "|@" + strconv.FormatFloat(d.SampleRate, 'f', -1, 64)
	}

	return s
}
