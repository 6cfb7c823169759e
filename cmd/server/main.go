package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adornodavid/aybcosteo-sub001/internal/config"
	"github.com/adornodavid/aybcosteo-sub001/internal/infra"
	"github.com/adornodavid/aybcosteo-sub001/internal/repository"
	"github.com/adornodavid/aybcosteo-sub001/internal/router"
	"github.com/adornodavid/aybcosteo-sub001/internal/service"
	"github.com/adornodavid/aybcosteo-sub001/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Composition root for async work: the worker pool needs the mailer, the
	// SMTP circuit breaker and the repos, so everything is wired here.
	mailer := infra.NewMailer(cfg)
	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)
	menuRepo := repository.NewMenuRepository(db)

	handlers := worker.Handlers{
		Reporte: worker.NewReporteWorker(menuRepo, dispatcher, cfg.PDFStoragePath),
		Email:   worker.NewEmailWorker(mailer, smtpCB, rdb),
	}
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, handlers)

	// Monthly snapshot cron — materializes fresh historico groups after a
	// month rollover even when no price event arrives.
	historicoSvc := service.NewHistoricoService(
		repository.NewHistoricoRepository(db),
		menuRepo,
		repository.NewPlatilloRepository(db),
	)
	interval, err := time.ParseDuration(cfg.SnapshotCronInterval)
	if err != nil {
		log.Warn().Str("value", cfg.SnapshotCronInterval).Msg("invalid SNAPSHOT_CRON_INTERVAL, using 24h")
		interval = 24 * time.Hour
	}
	worker.StartSnapshotCron(ctx, worker.SnapshotCronConfig{
		Menus:    menuRepo,
		Applier:  historicoSvc,
		RDB:      rdb,
		Interval: interval,
	})

	r := router.New(cfg, db, rdb, smtpCB)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("aybcosteo backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
