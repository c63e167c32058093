package main

import (
	"context"
	"os"
	"os/signal"
	"smartpark/config"
	"smartpark/di"
	"smartpark/helper"
	"smartpark/shared/logger"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

const closeTimeout = 10 * time.Second

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply database migrations")
		}
	}

	app := di.InitializeService()

	var workers sync.WaitGroup

	if cfg.Parking.Alert.Enable {
		workers.Add(1)

		go func() {
			defer workers.Done()

			app.Alert.Run(ctx)
		}()
	}

	if cfg.Parking.SpoolReplay {
		workers.Add(1)

		go func() {
			defer workers.Done()

			app.Session.Listen(ctx)
		}()
	}

	if err := app.HTTP.Serve(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server stopped")
	}

	stop()
	workers.Wait()

	closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	app.Close(closeCtx)
}
