// Package logging builds the process-wide structured logger.
package logging

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON zap logger at the given level ("debug", "info", "warn", "error").
// Unknown levels fall back to info.
func New(level string, loc *time.Location) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig = EncoderConfig(loc)
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// EncoderConfig is shared by the application logger and the access log so both
// write the same "ts"/"level"/"msg" keys.
func EncoderConfig(loc *time.Location) zapcore.EncoderConfig {
	if loc == nil {
		loc = time.UTC
	}
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(t.In(loc).Format(time.RFC3339Nano))
	}
	enc.EncodeDuration = zapcore.MillisDurationEncoder
	return enc
}
