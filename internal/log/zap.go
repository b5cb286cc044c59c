package log

import (
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger is a leveled logging engine backed by zap. Messages are printf-formatted; structure is
// conveyed through the key=value convention inside the message.
type ZapLogger struct {
	level Level
	sugar *zap.SugaredLogger
}

// NewZapLogger creates a logger limited to the specified level writing to standard error. A
// human-readable console encoding is used when standard error is a terminal, JSON otherwise.
func NewZapLogger(level Level) Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")

	var encoder zapcore.Encoder
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level.zapLevel())

	return NewZapLoggerFrom(zap.New(core), level)
}

// NewZapLoggerFrom wraps an existing zap logger. The level is used only for reporting via Level();
// filtering is left to the zap core.
func NewZapLoggerFrom(logger *zap.Logger, level Level) Logger {
	return &ZapLogger{
		level: level,
		sugar: logger.Sugar(),
	}
}

// Debug logs a debug message, if permitted by the current level.
func (l *ZapLogger) Debug(format string, v ...interface{}) {
	l.sugar.Debugf(format, v...)
}

// Info logs an informational message, if permitted by the current level.
func (l *ZapLogger) Info(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}

// Warn logs a warning message, if permitted by the current level.
func (l *ZapLogger) Warn(format string, v ...interface{}) {
	l.sugar.Warnf(format, v...)
}

// Error logs an error message, if permitted by the current level.
func (l *ZapLogger) Error(format string, v ...interface{}) {
	l.sugar.Errorf(format, v...)
}

// Level reads the current logging level.
func (l *ZapLogger) Level() Level {
	return l.level
}

// Sync flushes any buffered log entries.
func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}
