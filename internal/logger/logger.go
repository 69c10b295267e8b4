package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

// Init replaces the no-op default with the real JSON logger. Call once
// at process start, before anything worth logging happens.
func Init() {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	log = zap.Must(cfg.Build())
	log.Info("logger initialized")
}

func Info(msg string, fields map[string]any) {
	log.Info(msg, zapFields(fields)...)
}

func Warn(msg string, fields map[string]any) {
	log.Warn(msg, zapFields(fields)...)
}

func Error(msg string, fields map[string]any) {
	log.Error(msg, zapFields(fields)...)
}

func Fatal(msg string, fields map[string]any) {
	log.Fatal(msg, zapFields(fields)...)
}

func Sync() {
	_ = log.Sync()
}

func zapFields(fields map[string]any) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}
