// cmd/tools/dbmigrate/main.go
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appdb "github.com/codr1/chromapick/internal/db"
)

func main() {
	var (
		dbPath  = flag.String("db", "", "Path to SQLite history database")
		command = flag.String("command", "", "Command to run (up, down, version)")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Validate flags
	if *dbPath == "" || *command == "" {
		fmt.Fprintln(os.Stderr, "All flags are required:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*dbPath, *command); err != nil {
		log.Fatal().Err(err).Str("command", *command).Msg("Migration failed")
	}
}

func run(dbPath, command string) error {
	absDB, err := filepath.Abs(dbPath)
	if err != nil {
		return fmt.Errorf("invalid database path: %w", err)
	}

	// Create database directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(absDB), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite3", absDB)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	m, err := appdb.NewMigrator(sqlDB)
	if err != nil {
		sqlDB.Close()
		return err
	}
	defer m.Close()

	// Execute command
	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info().Str("db", absDB).Msg("Successfully ran migrations up")

	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to rollback migrations: %w", err)
		}
		log.Info().Str("db", absDB).Msg("Successfully ran migrations down")

	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Info().Msg("No migrations applied")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current version")

	default:
		return fmt.Errorf("unknown command: %s", command)
	}
	return nil
}
