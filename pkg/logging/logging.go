package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	Production  = "production"
	Development = "development"
)

// Config builds the zap config for env. Production logs JSON at info, anything else logs
// to the console at debug. A non-empty level overrides the default for env.
func Config(env, level string) (zap.Config, error) {
	var config zap.Config

	if env == Production {
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return config, fmt.Errorf("log level: %w", err)
		}
		config.Level = zap.NewAtomicLevelAt(lvl)
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stderr"}

	return config, nil
}

func New(env, level string) (*zap.Logger, error) {
	config, err := Config(env, level)
	if err != nil {
		return nil, err
	}

	return config.Build()
}

// Sync flushes the logger, ignoring the error syncing a terminal gives.
func Sync(logger *zap.Logger) {
	if logger != nil {
		_ = logger.Sync()
	}
}
