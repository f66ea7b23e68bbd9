package app

import (
	"go-hrdash/internal/config"

	"go.uber.org/zap"
)

// NewLogger picks the production encoder when APP_ENV=production and installs
// the result as the global zap logger.
func NewLogger(cfg config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}
