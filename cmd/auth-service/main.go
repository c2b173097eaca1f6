package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/app"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/config"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/utils/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zapLogger, err := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	if err := app.Run(cfg, zapLogger); err != nil {
		zapLogger.Fatal("service exited with error", zap.Error(err))
	}
}
