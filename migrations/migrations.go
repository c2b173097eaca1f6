// Package migrations embeds the schema migrations and applies them on
// startup when database.auto_migrate is enabled.
package migrations

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

// Up applies all pending migrations against databaseURL, which must be a
// postgres:// connection URL.
func Up(databaseURL string, logger *zap.Logger) error {
	source, err := iofs.New(migrationFiles, "sql")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	// The migrate pgx/v5 driver registers itself under the pgx5 scheme.
	url := strings.Replace(databaseURL, "postgres://", "pgx5://", 1)

	migrator, err := migrate.NewWithSourceInstance("iofs", source, url)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer migrator.Close()

	err = migrator.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No migrations to apply")
	} else {
		logger.Info("Migrations applied successfully")
	}
	return nil
}
