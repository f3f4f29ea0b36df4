package main

import (
	"labbook/config"
	"labbook/di"
	"labbook/helper"
	"labbook/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Labbook API
// @version 1.0
// @description Diagnostic test booking backend.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
