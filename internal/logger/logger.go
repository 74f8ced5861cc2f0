// Package logger wraps zap with the two-mode (prod/dev) configuration used
// across every Decent Cloud process: the API server, the email worker, and
// one-off admin tooling.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const StageProd = "prod"

var (
	// Log is the global logger instance, set by InitLogger.
	Log *zap.Logger
)

// InitLogger initializes the logger with the appropriate configuration
// based on the provided stage ("prod" vs anything else).
func InitLogger(stage string) {
	var config zap.Config
	if stage == StageProd {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	built, err := config.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	Log = built
}

func Info(msg string, fields ...zapcore.Field)  { Log.Info(msg, fields...) }
func Error(msg string, fields ...zapcore.Field) { Log.Error(msg, fields...) }
func Debug(msg string, fields ...zapcore.Field) { Log.Debug(msg, fields...) }
func Warn(msg string, fields ...zapcore.Field)  { Log.Warn(msg, fields...) }
func Fatal(msg string, fields ...zapcore.Field) { Log.Fatal(msg, fields...) }

// With creates a child logger and adds structured context to it.
func With(fields ...zapcore.Field) *zap.Logger { return Log.With(fields...) }

// Sync flushes any buffered log entries.
func Sync() error { return Log.Sync() }
