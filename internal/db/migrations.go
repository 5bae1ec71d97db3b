package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

var ErrMissingDatabaseURL = errors.New("database url is required")

// RunMigrations aplica las migraciones del esquema de contenido que esten pendientes.
func RunMigrations(databaseURL, migrationsPath string, logger *zap.Logger) error {
	if strings.TrimSpace(databaseURL) == "" {
		return ErrMissingDatabaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sourceURL := "file://" + strings.TrimPrefix(migrationsPath, "file://")
	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return fmt.Errorf("create migrate: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", err)
	}
	logger.Info("content migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
