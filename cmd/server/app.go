package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	backend "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/codr1/chromapick/internal/config"
	"github.com/codr1/chromapick/internal/db"
	"github.com/codr1/chromapick/internal/history"
	"github.com/codr1/chromapick/internal/metrics"
	"github.com/codr1/chromapick/internal/palette"
	"github.com/codr1/chromapick/internal/ratelimit"
	"github.com/codr1/chromapick/internal/scheduler"
)

// app owns the long-lived collaborators shared by the HTTP handlers.
type app struct {
	palettes  *palette.Registry
	store     history.Store
	database  *db.DB
	redis     *history.RedisStore
	limiter   *ratelimit.Limiter
	metrics   *metrics.Metrics
	scheduler *scheduler.Service

	closeOnce sync.Once
}

func newApp(cfg *ServerConfig) (*app, error) {
	a := &app{}

	palettes, err := palette.LoadRegistryFile(cfg.App.Palette.Default, cfg.App.Palette.File)
	if err != nil {
		return nil, err
	}
	a.palettes = palettes
	log.Info().
		Strs("palettes", palettes.Names()).
		Str("default", palettes.DefaultName()).
		Msg("Palettes loaded")

	switch cfg.App.Database.Driver {
	case config.DriverSQLite:
		database, err := db.NewFromConfig(cfg.App)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		a.database = database
		store, err := history.NewSQLStore(database)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.store = store
		log.Info().Str("filename", cfg.App.Database.Filename).Msg("Using SQLite history store")
	case config.DriverRedis:
		client := backend.NewClient(&backend.Options{
			Addr:     cfg.App.Database.Address,
			Password: cfg.App.Database.Password,
			DB:       cfg.App.Database.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := client.Ping(ctx).Err()
		cancel()
		if err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.App.Database.Address, err)
		}
		store, err := history.NewRedisStore(client)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		a.redis = store
		a.store = store
		log.Info().Str("address", cfg.App.Database.Address).Msg("Using Redis history store")
	default:
		a.store = history.NewMemoryStore()
		log.Info().Msg("Using in-memory history store")
	}

	if cfg.App.Features.EnableMetrics {
		a.metrics = metrics.New()
	}

	a.limiter = ratelimit.New(&ratelimit.Config{
		MaxPerSession: cfg.App.Sampling.MaxPerMinute,
		MaxPerIP:      4 * cfg.App.Sampling.MaxPerMinute,
	})

	a.scheduler, err = scheduler.New()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	var sink scheduler.StatsSink
	if a.metrics != nil {
		sink = a.metrics
	}
	if err := a.scheduler.RegisterHistoryStats(cfg.App.Scheduler.StatsCron, a.store, sink); err != nil {
		a.Close()
		return nil, fmt.Errorf("register history stats job: %w", err)
	}

	return a, nil
}

func (a *app) Close() {
	a.closeOnce.Do(func() {
		if a.scheduler != nil {
			if err := a.scheduler.Stop(); err != nil {
				log.Error().Err(err).Msg("Failed to stop scheduler")
			}
		}
		if a.limiter != nil {
			a.limiter.Close()
		}
		if a.database != nil {
			if err := a.database.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close database")
			}
		}
		if a.redis != nil {
			if err := a.redis.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close redis store")
			}
		}
	})
}
