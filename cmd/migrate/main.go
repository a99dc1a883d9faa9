package main

import (
	"os"
	"parkflow/config"
	"parkflow/helper"
	"parkflow/shared/logger"

	"github.com/rs/zerolog/log"
)

const argLength = 2

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	if len(os.Args) < argLength {
		log.Fatal().Msg("migration action is required: up, down, drop or step-up")
	}

	if err := helper.Runner(cfg, os.Args[1]); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}
