//go:generate go run golang.org/x/tools/cmd/stringer -type=Severity -linecomment=true

package log

import (
	"strconv"
	"strings"
)

// Severity is an RFC 5424 syslog severity. Lower values are more severe.
type Severity int

const (
	// SeverityEmergency means the system is unusable.
	SeverityEmergency Severity = iota // emergency
	// SeverityAlert means action must be taken immediately.
	SeverityAlert // alert
	// SeverityCritical describes critical conditions.
	SeverityCritical // critical
	// SeverityError describes error conditions.
	SeverityError // error
	// SeverityWarning describes warning conditions.
	SeverityWarning // warning
	// SeverityNotice describes normal but significant conditions.
	SeverityNotice // notice
	// SeverityInfo describes informational messages.
	SeverityInfo // info
	// SeverityDebug describes debug-level messages.
	SeverityDebug // debug
)

// ParseSeverity looks up a Severity by its case-insensitive name or by its numeric code.
func ParseSeverity(severity string) (Severity, bool) {
	severity = strings.TrimSpace(severity)

	if code, err := strconv.Atoi(severity); err == nil {
		if code < int(SeverityEmergency) || code > int(SeverityDebug) {
			return SeverityDebug, false
		}

		return Severity(code), true
	}

	for s := SeverityEmergency; s <= SeverityDebug; s++ {
		if strings.EqualFold(severity, s.String()) {
			return s, true
		}
	}

	return SeverityDebug, false
}

// AtLeast reports whether s is as severe as, or more severe than, threshold.
func (s Severity) AtLeast(threshold Severity) bool {
	return s <= threshold
}

// Label returns the capitalized severity name used in metric names, such as "Warning".
func (s Severity) Label() string {
	name := s.String()
	if s < SeverityEmergency || s > SeverityDebug {
		return name
	}

	return strings.ToUpper(name[:1]) + name[1:]
}

// UnmarshalText allows severities to be written by name in configuration files.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, ok := ParseSeverity(string(text))
	if !ok {
		return &UnknownSeverityError{Value: string(text)}
	}

	*s = parsed
	return nil
}

// MarshalText renders the severity name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnknownSeverityError reports a severity name that could not be parsed.
type UnknownSeverityError struct {
	Value string
}

func (e *UnknownSeverityError) Error() string {
	return "log: unknown severity: value=" + e.Value
}
