package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"
	"parkflow/config"
	"parkflow/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationsSource = "file://migrations/postgres"

var ErrUnknownAction = errors.New("unknown migration action")

// Actions maps a CLI verb to the migrate call it performs.
var Actions = map[string]func(*migrate.Migrate) error{
	"up":      (*migrate.Migrate).Up,
	"drop":    (*migrate.Migrate).Down,
	"down":    func(m *migrate.Migrate) error { return m.Steps(-1) },
	"step-up": func(m *migrate.Migrate) error { return m.Steps(1) },
}

func open(cfg *config.Config) (*migrate.Migrate, error) {
	dsn := postgres.DSN(cfg, cfg.DB.Postgres.Write, url.Values{
		"x-migrations-table": {cfg.DB.Postgres.MigrationTable},
	})

	mig, err := migrate.New(migrationsSource, dsn)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// Runner applies one action against the write database. ErrNoChange is not an error.
func Runner(cfg *config.Config, action string) error {
	run, ok := Actions[action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	mig, err := open(cfg)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err := run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("error reading migration version: %w", err)
	}

	log.Info().Str("action", action).Uint("version", version).Bool("dirty", dirty).Msg("Database migration finished")

	return nil
}

func Up(cfg *config.Config) error {
	return Runner(cfg, "up")
}
