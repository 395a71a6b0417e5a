// Package logger wraps zap with the application's logging conventions.
package logger

import (
	"github.com/invoza/webapp/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "invoice-web"

var log *zap.Logger = zap.NewNop()

// Init builds the global logger from configuration. Production gets JSON
// output with ISO timestamps; everything else gets the colored development
// encoder.
func Init(cfg *config.Config) error {
	var level zapcore.Level
	switch cfg.Log.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	fields := zap.Fields(
		zap.String("service", serviceName),
		zap.String("environment", cfg.App.Env),
	)

	var err error
	if cfg.App.Env == "production" {
		prodConfig := zap.NewProductionConfig()
		prodConfig.Level = zap.NewAtomicLevelAt(level)
		prodConfig.EncoderConfig.TimeKey = "timestamp"
		prodConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		log, err = prodConfig.Build(fields)
	} else {
		devConfig := zap.NewDevelopmentConfig()
		devConfig.Level = zap.NewAtomicLevelAt(level)
		devConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		log, err = devConfig.Build(fields)
	}
	if err != nil {
		return err
	}

	zap.ReplaceGlobals(log)
	return nil
}

// L returns the global logger instance.
func L() *zap.Logger {
	return log
}
