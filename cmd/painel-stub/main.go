package main

import (
	"fmt"
	"os"

	"github.com/painel-dev/painelctl/internal/logger"
	"github.com/painel-dev/painelctl/internal/stubserver"
)

var version = "dev" // Will be set during build with -ldflags

func main() {
	cfg, err := stubserver.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log := logger.GetLogger()

	srv, err := stubserver.New(cfg, log, version)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create stub server")
	}

	log.Info().Str("version", version).Msg("Starting Painel stub server...")

	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("Server failed to start")
	}
}
