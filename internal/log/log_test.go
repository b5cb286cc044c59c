package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"
)

func TestParseLevel(t *testing.T) {
	level, ok := ParseLevel("warn")
	assert.True(t, ok)
	assert.Equal(t, Warn, level)

	level, ok = ParseLevel("DEBUG")
	assert.True(t, ok)
	assert.Equal(t, Debug, level)

	level, ok = ParseLevel("verbose")
	assert.False(t, ok)
	assert.Equal(t, Error, level)
}

func TestLevelEnables(t *testing.T) {
	assert.True(t, Debug.Enables(Error))
	assert.True(t, Info.Enables(Info))
	assert.False(t, Error.Enables(Warn))
}

func TestLevelSeverity(t *testing.T) {
	assert.Equal(t, SeverityDebug, Debug.Severity())
	assert.Equal(t, SeverityInfo, Info.Severity())
	assert.Equal(t, SeverityWarning, Warn.Severity())
	assert.Equal(t, SeverityError, Error.Severity())
}

func TestParseSeverity(t *testing.T) {
	t.Run("Parses names case-insensitively", func(t *testing.T) {
		severity, ok := ParseSeverity("Warning")
		assert.True(t, ok)
		assert.Equal(t, SeverityWarning, severity)
	})

	t.Run("Parses numeric codes", func(t *testing.T) {
		severity, ok := ParseSeverity("2")
		assert.True(t, ok)
		assert.Equal(t, SeverityCritical, severity)
	})

	t.Run("Rejects unknown values", func(t *testing.T) {
		_, ok := ParseSeverity("loud")
		assert.False(t, ok)

		_, ok = ParseSeverity("8")
		assert.False(t, ok)
	})
}

func TestSeverityAtLeast(t *testing.T) {
	assert.True(t, SeverityError.AtLeast(SeverityWarning))
	assert.True(t, SeverityWarning.AtLeast(SeverityWarning))
	assert.False(t, SeverityNotice.AtLeast(SeverityWarning))
}

func TestSeverityLabel(t *testing.T) {
	labels := []string{"Emergency", "Alert", "Critical", "Error", "Warning", "Notice", "Info", "Debug"}

	for s := SeverityEmergency; s <= SeverityDebug; s++ {
		assert.Equal(t, labels[s], s.Label())
	}

	assert.Equal(t, "Severity(9)", Severity(9).Label())
}

func TestSeverityYAML(t *testing.T) {
	var out struct {
		Threshold Severity `yaml:"threshold"`
	}

	require.NoError(t, yaml.Unmarshal([]byte("threshold: critical"), &out))
	assert.Equal(t, SeverityCritical, out.Threshold)

	err := yaml.Unmarshal([]byte("threshold: shouting"), &out)
	assert.Error(t, err)
}

func TestZapLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewZapLoggerFrom(zap.New(core), Info)

	logger.Debug("hidden: value=%d", 1)
	logger.Info("transport: sent datagrams: count=%d", 3)
	logger.Error("transport: failed: err=%v", "boom")

	assert.Equal(t, Info, logger.Level())
	require.Equal(t, 2, logs.Len())

	entries := logs.All()
	assert.Equal(t, "transport: sent datagrams: count=3", entries[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Error("discarded")
	assert.Equal(t, Error, logger.Level())
}
