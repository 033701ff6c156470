// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/chromapick/internal/config"
)

type ServerConfig struct {
	App             *config.Config
	ShutdownTimeout time.Duration
	StaticDir       string
	TrustProxy      bool
}

func loadConfig() (*ServerConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	appConfig, err := loadAppConfig(getEnv("CONFIG_PATH", "config/app.yaml"))
	if err != nil {
		return nil, err
	}

	// Environment overrides the config file.
	if port, ok := os.LookupEnv("PORT"); ok {
		value, err := strconv.Atoi(port)
		if err != nil || value <= 0 {
			return nil, fmt.Errorf("invalid PORT %q", port)
		}
		appConfig.App.Port = value
	}
	appConfig.App.Environment = getEnv("ENVIRONMENT", appConfig.App.Environment)

	return &ServerConfig{
		App:             appConfig,
		ShutdownTimeout: time.Duration(getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 30)) * time.Second,
		StaticDir:       getEnv("STATIC_DIR", "build/bin/static"),
		TrustProxy:      getEnv("TRUST_PROXY", "false") == "true",
	}, nil
}

// loadAppConfig falls back to the built-in defaults when the file is missing.
func loadAppConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		log.Warn().Str("config_path", path).Msg("Config file not found, using defaults")
		return config.Default(), nil
	}
	return nil, err
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func setupLogger(environment string, debug bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.App.Environment, cfg.App.Features.EnableDebug)

	app, err := newApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer app.Close()

	server := newServer(cfg, app)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	app.scheduler.Start()

	// Run server
	g.Go(func() error {
		log.Info().Int("port", cfg.App.App.Port).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Wait for interrupt signal
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		app.Close()
		os.Exit(1)
	}
}
