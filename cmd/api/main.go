package main

import (
	"log"

	"go-hrdash/internal/app"
	"go-hrdash/internal/config"
	"go-hrdash/internal/shared/apperror"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := app.NewLogger(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	apperror.Init()

	if err := app.RunAPI(cfg); err != nil {
		logger.Fatal("run api failed", zap.Error(err))
	}
}
