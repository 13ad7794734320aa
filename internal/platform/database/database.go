// Package database selects the GORM dialect configured for the process.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Apurer/sales-order-api/internal/platform/migrations"
	platformmysql "github.com/Apurer/sales-order-api/internal/platform/mysql"
	platformpostgres "github.com/Apurer/sales-order-api/internal/platform/postgres"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

const pingTimeout = 5 * time.Second

// Settings identifies the database to dial and how to size its pool. Zero pool values use the
// defaults below.
type Settings struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (s Settings) withDefaults() Settings {
	if s.MaxOpenConns <= 0 {
		s.MaxOpenConns = 25
	}
	if s.MaxIdleConns <= 0 {
		s.MaxIdleConns = 5
	}
	if s.ConnMaxLifetime <= 0 {
		s.ConnMaxLifetime = 5 * time.Minute
	}
	return s
}

// Dialector resolves the GORM dialector for the configured driver.
func Dialector(settings Settings) (gorm.Dialector, error) {
	switch strings.ToLower(strings.TrimSpace(settings.Driver)) {
	case "", DriverPostgres:
		return platformpostgres.Dialector(settings.DSN)
	case DriverMySQL:
		return platformmysql.Dialector(settings.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", settings.Driver)
	}
}

// Open dials the configured driver, sizes the pool and verifies connectivity.
func Open(ctx context.Context, settings Settings) (*gorm.DB, error) {
	settings = settings.withDefaults()
	dialector, err := Dialector(settings)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(settings.MaxOpenConns)
	sqlDB.SetMaxIdleConns(settings.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(settings.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Connect dials, migrates and returns the DB plus a cleanup function. When no DSN is configured or
// any step fails, it logs and returns nil with a no-op cleanup so callers fall back to memory.
func Connect(ctx context.Context, settings Settings, logger *slog.Logger) (*gorm.DB, func()) {
	if strings.TrimSpace(settings.DSN) == "" {
		logger.Warn("database DSN not set, falling back to in-memory repositories", slog.String("driver", settings.Driver))
		return nil, func() {}
	}
	db, err := Open(ctx, settings)
	if err != nil {
		logger.Warn("failed to connect to database, falling back to in-memory repositories",
			slog.String("driver", settings.Driver), slog.String("error", err.Error()))
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap database connection, falling back to in-memory repositories", slog.String("error", err.Error()))
		return nil, func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to migrate schema, falling back to in-memory repositories", slog.String("error", err.Error()))
		_ = sqlDB.Close()
		return nil, func() {}
	}
	logger.Info("database connection established", slog.String("driver", settings.Driver))
	return db, func() { _ = sqlDB.Close() }
}
