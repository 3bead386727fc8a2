package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/bucket-sync/internal/config"
	"github.com/MKhiriev/bucket-sync/internal/logger"
	"github.com/MKhiriev/bucket-sync/internal/peer"
	"github.com/MKhiriev/bucket-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("bucket-sync-peer")
	cfg, err := config.GetPeerConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if cfg.UI.Enabled {
		// the monitor owns the terminal
		if log, err = logger.NewFileLogger("bucket-sync-peer", cfg.UI.LogFile); err != nil {
			log.Warn().Err(err).Msg("error opening log file, logging to stderr")
		}
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	app, err := peer.NewApp(ctx, cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating peer")
	}

	if err = app.Run(ctx); err != nil {
		log.Err(err).Msg("peer stopped with error")
		stop()
		os.Exit(1)
	}
}

func printBuildInfo(info models.AppBuildInfo) {
	for _, f := range info.Fields() {
		fmt.Printf("%s: %s\n", f.Label, f.Value)
	}
}
