// Package migrations embeds the schema of the request and conversation
// logs and applies it with golang-migrate.
package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

//go:embed postgres/*.sql sqlite/*.sql mysql/*.sql
var files embed.FS

// New returns a migrate instance for driver (postgres, sqlite or mysql)
// pointed at databaseURL.
func New(driver, databaseURL string) (*migrate.Migrate, error) {
	switch driver {
	case "postgres", "sqlite", "mysql":
	default:
		return nil, fmt.Errorf("no migrations for driver: %s", driver)
	}

	src, err := iofs.New(files, driver)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// Up applies all pending migrations
func Up(driver, databaseURL string) error {
	m, err := New(driver, databaseURL)
	if err != nil {
		return err
	}
	defer closeQuietly(m)

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Str("driver", driver).Msg("database migration: no changes")
			return nil
		}
		return fmt.Errorf("failed to run migrate up: %w", err)
	}

	log.Info().Str("driver", driver).Msg("database migration: success")
	return nil
}

// Down rolls back steps migrations; steps <= 0 rolls back everything.
func Down(driver, databaseURL string, steps int) error {
	m, err := New(driver, databaseURL)
	if err != nil {
		return err
	}
	defer closeQuietly(m)

	if steps > 0 {
		err = m.Steps(-steps)
	} else {
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrate down: %w", err)
	}
	return nil
}

// Version reports the applied schema version
func Version(driver, databaseURL string) (uint, bool, error) {
	m, err := New(driver, databaseURL)
	if err != nil {
		return 0, false, err
	}
	defer closeQuietly(m)

	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

func closeQuietly(m *migrate.Migrate) {
	if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
		log.Warn().AnErr("source", srcErr).AnErr("database", dbErr).Msg("failed to close migrate instance")
	}
}
