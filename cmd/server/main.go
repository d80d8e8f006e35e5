package main

import (
	"github.com/velmor/go-auth-api/internal/config"
	"github.com/velmor/go-auth-api/internal/logger"
)

func main() {
	cfg := config.Load()

	logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputPath: cfg.LogFile,
		MaxSizeMB:  100,
		MaxBackups: 3,
		MaxAgeDays: 28,
	})
	defer logger.Sync()

	// Без секрета подписи токенов сервис не стартует.
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", logger.ErrorField(err))
	}

	srv, err := NewServer(cfg)
	if err != nil {
		logger.Fatal("failed to build server", logger.ErrorField(err))
	}

	if err := srv.Run(cfg.Port); err != nil {
		logger.Fatal("server run error", logger.ErrorField(err))
	}
}
