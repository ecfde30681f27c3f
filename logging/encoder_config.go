package logging

import (
	"time"

	"go.uber.org/zap/zapcore"
)

// JSON field names used in the log file.
const (
	fieldTimestamp  = "timestamp"
	fieldLevel      = "level"
	fieldMessage    = "message"
	fieldCaller     = "caller"
	fieldSource     = "source"
	fieldStacktrace = "stacktrace"
)

// newFileEncoderConfig returns the encoder config for the JSON log file:
// ISO8601 timestamps, lowercase levels, short caller paths.
func newFileEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:       fieldTimestamp,
		LevelKey:      fieldLevel,
		NameKey:       fieldSource,
		CallerKey:     fieldCaller,
		MessageKey:    fieldMessage,
		StacktraceKey: fieldStacktrace,
		LineEnding:    zapcore.DefaultLineEnding,

		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// newConsoleEncoderConfig returns the development console encoder config:
// colored levels and compact times.
func newConsoleEncoderConfig() zapcore.EncoderConfig {
	cfg := newFileEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("15:04:05.000"))
	}
	cfg.EncodeDuration = zapcore.StringDurationEncoder
	return cfg
}
