package meta

import (
	"io/ioutil"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"statsdemit/internal/log"
	"statsdemit/internal/metrics"
	"statsdemit/internal/network"
	"statsdemit/internal/protocol"
)

// Defaults applied to omitted configuration keys.
const (
	DefaultPort          = 8125
	DefaultSampleRate    = 1.0
	DefaultWatchdogLevel = log.SeverityWarning
	DefaultSessionCookie = "session_id"
	DefaultSessionWindow = time.Hour
	DefaultServerAddress = "127.0.0.1:8080"
)

const (
	maxPort = 65535
	// Prefix and suffix are joined to metric names with dots, so stray dots are trimmed too.
	prefixSuffixCutset = ". \t"
	hostCutset         = " \t\r\n"
)

// ApplicationConfig is a top-level block for application-level meta configuration.
type ApplicationConfig struct {
	SentryDSN string `yaml:"sentry_dsn"`
}

// StatsdConfig is a top-level block for the statsd transport.
type StatsdConfig struct {
	Enabled    bool          `yaml:"enabled"`
	Host       string        `yaml:"host"`
	Port       *Port         `yaml:"port"`
	Prefix     string        `yaml:"prefix"`
	Suffix     string        `yaml:"suffix"`
	SampleRate *float64      `yaml:"sample_rate"`
	Timeout    time.Duration `yaml:"timeout"`
}

// EventsConfig is a top-level block for the per-category event toggles consumed by the event
// producers. None of it affects the transport.
type EventsConfig struct {
	UserEvents        bool          `yaml:"user_events"`
	PerformanceEvents bool          `yaml:"performance_events"`
	WatchdogEvents    bool          `yaml:"watchdog_events"`
	WatchdogLevel     *log.Severity `yaml:"watchdog_level"`
	SessionCookie     string        `yaml:"session_cookie"`
	SessionWindow     time.Duration `yaml:"session_window"`
}

// ServerConfig is a top-level block for the demo HTTP server.
type ServerConfig struct {
	Address string `yaml:"addr"`
}

// Port is a UDP port number. It only decodes from an integer YAML scalar, so that a fractional or
// quoted value is rejected instead of truncated.
type Port int

// UnmarshalYAML decodes an integer scalar.
func (p *Port) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode || value.ShortTag() != "!!int" {
		return errors.Errorf("config: statsd port must be an integer: line=%d value=%q", value.Line, value.Value)
	}

	var port int
	if err := value.Decode(&port); err != nil {
		return errors.Wrapf(err, "config: invalid statsd port: line=%d", value.Line)
	}

	*p = Port(port)

	return nil
}

// Config describes all application configuration options.
type Config struct {
	Application *ApplicationConfig `yaml:"application"`
	Statsd      *StatsdConfig      `yaml:"statsd"`
	Events      *EventsConfig      `yaml:"events"`
	Server      *ServerConfig      `yaml:"server"`
}

// ParseConfig parses a Config struct instance from a file specified as a path on disk.
func ParseConfig(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: error reading config: path=%s", path)
	}

	return ParseConfigBytes(data)
}

// ParseConfigBytes parses, normalizes, and validates a YAML document.
func ParseConfigBytes(data []byte) (*Config, error) {
	var cfg *Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "config: error parsing config")
	}

	if cfg == nil {
		cfg = &Config{}
	}

	cfg.normalize()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DefaultConfig returns a normalized configuration with the transport disabled.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.normalize()

	return cfg
}

// TransportConfig converts the statsd block into the snapshot consumed by the transport.
func (c *Config) TransportConfig() metrics.TransportConfig {
	return metrics.TransportConfig{
		Enabled:           c.Statsd.Enabled,
		Host:              c.Statsd.Host,
		Port:              uint16(*c.Statsd.Port),
		Prefix:            c.Statsd.Prefix,
		Suffix:            c.Statsd.Suffix,
		DefaultSampleRate: metrics.SampleRate(*c.Statsd.SampleRate),
		Timeout:           c.Statsd.Timeout,
	}
}

// normalize fills omitted blocks and keys with defaults and trims stray whitespace and delimiter
// dots from user-entered strings.
func (c *Config) normalize() {
	if c.Application == nil {
		c.Application = &ApplicationConfig{}
	}

	if c.Statsd == nil {
		c.Statsd = &StatsdConfig{}
	}

	if c.Events == nil {
		c.Events = &EventsConfig{}
	}

	if c.Server == nil {
		c.Server = &ServerConfig{}
	}

	c.Statsd.Host = strings.Trim(c.Statsd.Host, hostCutset)
	c.Statsd.Prefix = strings.Trim(c.Statsd.Prefix, prefixSuffixCutset)
	c.Statsd.Suffix = strings.Trim(c.Statsd.Suffix, prefixSuffixCutset)

	if c.Statsd.Port == nil {
		port := Port(DefaultPort)
		c.Statsd.Port = &port
	}

	if c.Statsd.SampleRate == nil {
		rate := DefaultSampleRate
		c.Statsd.SampleRate = &rate
	}

	if c.Statsd.Timeout <= 0 {
		c.Statsd.Timeout = network.DefaultTimeout
	}

	if c.Events.WatchdogLevel == nil {
		level := DefaultWatchdogLevel
		c.Events.WatchdogLevel = &level
	}

	if c.Events.SessionCookie == "" {
		c.Events.SessionCookie = DefaultSessionCookie
	}

	if c.Events.SessionWindow <= 0 {
		c.Events.SessionWindow = DefaultSessionWindow
	}

	if c.Server.Address == "" {
		c.Server.Address = DefaultServerAddress
	}
}

// validate the contents of the configuration. Returns an error if validation failed; nil otherwise.
func (c *Config) validate() error {
	/* Statsd */

	if err := metrics.SampleRate(*c.Statsd.SampleRate).Validate(); err != nil {
		return errors.Wrap(err, "config: statsd sample rate must be in range (0.0, 1.0]")
	}

	if port := *c.Statsd.Port; port < 1 || port > maxPort {
		return errors.Errorf("config: statsd port must be in range [1, %d]: port=%d", maxPort, port)
	}

	// A disabled transport may leave the host unset.
	if c.Statsd.Enabled && c.Statsd.Host == "" {
		return errors.New("config: missing statsd host")
	}

	if strings.ContainsAny(c.Statsd.Prefix+c.Statsd.Suffix, ":|\n") {
		return errors.Errorf(
			"config: statsd prefix and suffix may not contain delimiters: prefix=%q suffix=%q",
			c.Statsd.Prefix,
			c.Statsd.Suffix,
		)
	}

	if protocol.HasEmptySegment(c.Statsd.Prefix) || protocol.HasEmptySegment(c.Statsd.Suffix) {
		return errors.Errorf(
			"config: statsd prefix and suffix may not contain empty segments: prefix=%q suffix=%q",
			c.Statsd.Prefix,
			c.Statsd.Suffix,
		)
	}

	return nil
}
