package initializers

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultMigrationsSource holds the action_items schema.
const DefaultMigrationsSource = "file://db/migrations"

// Migrate applies every pending migration from source to db.
func Migrate(db *gorm.DB, source string, logger *zap.Logger) error {
	if db == nil {
		return fmt.Errorf("no database connection to migrate")
	}
	if source == "" {
		source = DefaultMigrationsSource
	}
	logger.Info("starting database migration", zap.String("source", source))

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("error getting underlying *sql.DB: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{
		MigrationsTable: "schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create the postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("error reading migration version: %w", err)
	}
	logger.Info("migration completed", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
