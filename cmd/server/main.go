package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/config"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/infra"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/repository"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/router"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/worker"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open local store")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Remote authority client + circuit breaker; the sync cron drains the
	// offline queue in the background while the HTTP API serves the host shell.
	remote := infra.NewRemoteClient(cfg.ServerURL, cfg.ServerAPIKey, time.Duration(cfg.RemoteTimeoutSec)*time.Second)
	cb := infra.NewCircuitBreaker(infra.DefaultCBConfig())

	saleRepo := repository.NewSaleRepository(db)
	syncLogRepo := repository.NewSyncLogRepository(db)
	engine := worker.NewSyncEngine(saleRepo, syncLogRepo, remote, cb)

	if cfg.SyncIntervalSec > 0 {
		worker.StartSyncCron(ctx, engine, saleRepo, cb, time.Duration(cfg.SyncIntervalSec)*time.Second)
	}

	r := router.New(cfg, db, remote, cb, engine)

	srv := &http.Server{
		Addr:         fmt.Sprintf("127.0.0.1:%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("vopecs pos core listening on 127.0.0.1:%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
