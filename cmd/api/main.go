package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/HassaanMujtaba/auth-service/internal/api"
	"github.com/HassaanMujtaba/auth-service/internal/infrastructure/config"
	mongostore "github.com/HassaanMujtaba/auth-service/internal/infrastructure/db/mongo"
	"github.com/HassaanMujtaba/auth-service/pkg/logger"
)

func main() {
	// The env file depends on the runtime mode; a missing file is fine,
	// process environment takes over.
	envFile := ".env.dev"
	if os.Getenv("ENV") == "production" {
		envFile = ".env.prod"
	}
	_ = godotenv.Load(envFile)

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.Production(),
	})
	log.Info().Str("env", cfg.Env).Msg("starting auth service")

	if cfg.Mongo.URI == "" {
		log.Fatal().Msg("MONGO_URI not found in environment variables")
	}

	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting DB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()

	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("error creating indexes")
	}
	log.Info().Msg("DB connected successfully")

	e := api.NewRouter(db, cfg, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("server running")

	// Graceful shutdown on SIGINT/SIGTERM.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("server shut down")
}
