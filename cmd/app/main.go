package main

import (
	"parkflow/config"
	"parkflow/di"
	_ "parkflow/docs"
	"parkflow/helper"
	"parkflow/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Parkflow API
// @version 1.0
// @description Parking lot occupancy, bookings and billing.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("failed to apply database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
