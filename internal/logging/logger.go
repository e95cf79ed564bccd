package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mangaart/internal/config"
)

// New builds the process logger. Debug mode gets the human-readable
// development encoder, everything else JSON.
func New(app config.AppConfig) (*zap.Logger, error) {
	var cfg zap.Config
	if app.Debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(
		zap.String("service", app.Name),
		zap.String("version", app.Version),
		zap.String("env", app.Env),
	), nil
}
