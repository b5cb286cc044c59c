package protocol

import (
	"strings"
)

// Entry is an encoded metric: a metric name and its value fragment, which carries the type tag and
// optionally a sample rate annotation.
type Entry struct {
	Name  string
	Value string
}

// Encode produces the wire entry for an observation.
func Encode(o Observation) Entry {
	return Entry{
		Name:  o.name,
		Value: o.value + "|" + o.kind.Tag(),
	}
}

// EncodeAll encodes a batch of observations, preserving order.
func EncodeAll(observations []Observation) []Entry {
	entries := make([]Entry, len(observations))
	for idx, observation := range observations {
		entries[idx] = Encode(observation)
	}

	return entries
}

// DecorateName joins the prefix, name, and suffix with dots. Empty segments of the prefix and
// suffix are dropped, so stray dots in either never reach the wire.
func DecorateName(name string, prefix string, suffix string) string {
	parts := make([]string, 0, 3)
	parts = appendSegments(parts, prefix)
	parts = append(parts, name)
	parts = appendSegments(parts, suffix)

	return strings.Join(parts, ".")
}

func appendSegments(parts []string, affix string) []string {
	for _, segment := range strings.Split(affix, ".") {
		if segment != "" {
			parts = append(parts, segment)
		}
	}

	return parts
}

// Datagram renders the wire form of a single entry.
func (e Entry) Datagram() string {
	return e.Name + ":" + e.Value
}
