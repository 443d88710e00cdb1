package main

import (
	"context"
	"fmt"
	"os"

	"github.com/abbasl7/e-vault/internal/config"
	"github.com/abbasl7/e-vault/internal/logger"
	"github.com/abbasl7/e-vault/internal/schema"
	"github.com/abbasl7/e-vault/internal/service"
	"github.com/abbasl7/e-vault/internal/store"
	"github.com/abbasl7/e-vault/internal/tui"
	"github.com/abbasl7/e-vault/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewFileLogger("e-vault", cfg.Log.Path)
	ctx := log.WithContext(context.Background())

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Error().Err(err).Msg("close local storage")
		}
	}()

	services := service.NewServices(storages, schema.Default(), cfg.Files.MaxAttachmentSize, log)

	watcher := workers.NewInactivityWatcher(services.SessionService, cfg.Session.InactivityTimeout, cfg.Session.PollInterval, log)
	workers.NewWorkers(watcher).Run()
	defer watcher.Stop()

	ui := tui.New(services, log)
	if err := ui.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("terminal ui error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
