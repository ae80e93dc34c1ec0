package migration

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsDir = "migrations"

// Up applies every pending embedded migration.
func Up(ctx context.Context, db *sql.DB, log logrus.FieldLogger, dbHost string) error {
	start := time.Now()
	entry := log.WithFields(logrus.Fields{
		"component": "database",
		"db_host":   dbHost,
	})
	entry.WithField("event", "db_migration_start").Info("applying migrations")

	if err := setup(entry); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		entry.WithFields(logrus.Fields{
			"event":       "db_migration_failed",
			"duration_ms": time.Since(start).Milliseconds(),
		}).WithError(err).Error("migration failed")
		return fmt.Errorf("migrate up: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	entry.WithFields(logrus.Fields{
		"event":          "db_migration_success",
		"schema_version": version,
		"duration_ms":    time.Since(start).Milliseconds(),
	}).Info("migrations applied")
	return nil
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, db *sql.DB, log logrus.FieldLogger) error {
	entry := log.WithField("component", "database")
	if err := setup(entry); err != nil {
		return err
	}
	if err := goose.DownContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	entry.WithField("event", "db_migration_down").Info("rolled back one migration")
	return nil
}

// Status logs the applied state of every embedded migration.
func Status(ctx context.Context, db *sql.DB, log logrus.FieldLogger) error {
	if err := setup(log.WithField("component", "database")); err != nil {
		return err
	}
	if err := goose.StatusContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("migration status: %w", err)
	}
	return nil
}

func setup(log *logrus.Entry) error {
	goose.SetBaseFS(migrationFiles)
	goose.SetLogger(log)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return nil
}
