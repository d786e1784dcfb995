// cmd/server/main.go
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
	"golang.org/x/sync/errgroup"

	"github.com/tamarside/rounders/internal/api/auth"
	"github.com/tamarside/rounders/internal/api/blog"
	"github.com/tamarside/rounders/internal/api/home"
	"github.com/tamarside/rounders/internal/api/matches"
	"github.com/tamarside/rounders/internal/api/players"
	"github.com/tamarside/rounders/internal/api/teams"
	"github.com/tamarside/rounders/internal/config"
	"github.com/tamarside/rounders/internal/db"
)

const shutdownTimeout = 30 * time.Second

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment)

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	auth.Init(cfg)
	teams.InitHandlers(database, cfg)
	players.InitHandlers(database, cfg)
	matches.InitHandlers(database, cfg)
	home.InitHandlers(database, cfg)
	blog.InitHandlers(database, cfg)

	server := newServer(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
