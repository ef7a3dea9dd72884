package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := LoadConfig()
	setupLogger(cfg)
	log.Info().
		Str("http", cfg.HTTPAddr).
		Str("grpc", cfg.GRPCAddr).
		Str("driver", cfg.DBDriver).
		Str("db", cfg.DBPath).
		Bool("events", cfg.RabbitURL != "").
		Msg("starting catalog service")

	// DB + migraciones + seed opcional
	db, err := openDB(cfg.DBDriver, cfg.DBPath)
	must(err)
	defer db.Close()
	must(runMigrations(db, cfg.DBDriver))

	if cfg.SeedOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		seeded, err := seedIfEmpty(ctx, db)
		cancel()
		if err != nil {
			log.Warn().Err(err).Msg("seed failed")
		} else if seeded {
			log.Info().Msg("seeded sample catalog")
		}
	}

	repo, err := NewCachedRepo(NewSQLiteRepo(db), cfg.CacheSize)
	must(err)

	rabbit, err := NewRabbit(cfg.RabbitURL, cfg.RabbitExchange)
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq not available, continuing without events")
	}
	defer rabbit.Close()

	svc := NewService(repo, rabbit)
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      NewRouter(cfg, NewBookHandler(svc, cfg.MaxBodyBytes)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var health *HealthServer
	if cfg.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		must(err)
		health = NewHealthServer()
		go func() {
			if err := health.Serve(lis); err != nil {
				log.Error().Err(err).Msg("grpc health server stopped")
			}
		}()
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("http listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()
	if health != nil {
		health.SetServing(true)
	}

	// Señales para apagado limpio
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn().Msg("shutting down...")

	if health != nil {
		health.Stop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("catalog service stopped")
}

func must(err error) {
	if err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}
}
