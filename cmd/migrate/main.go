package main

import (
	"os"

	"todoapi/config"
	"todoapi/helper"
	"todoapi/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down) is required")
	}

	cfg := config.Get()

	logger.SetLogLevel(cfg)

	switch action := os.Args[1]; action {
	case helper.ActionUp, helper.ActionDown, helper.ActionDrop, helper.ActionStepUp:
		if err := helper.Runner(cfg, action); err != nil {
			log.Fatal().Err(err).Msg("Migration failed")
		}
	default:
		log.Fatal().Msg("Invalid direction. Use 'up', 'down', 'drop' or 'step-up'")
	}
}
