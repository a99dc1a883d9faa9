package postgres

//go:generate go run go.uber.org/mock/mockgen -source=./postgres.go -destination=./mocks/postgres_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"parkflow/config"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10

	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
)

// Transactor runs a unit of work on the write connection.
type Transactor interface {
	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	return &Connection{
		Read:  connect(cfg, "read", cfg.DB.Postgres.Read),
		Write: connect(cfg, "write", cfg.DB.Postgres.Write),
	}
}

// WithTx runs fn inside a write transaction. The transaction is rolled back
// when fn returns an error or panics.
func (c *Connection) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := c.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}

		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// IsUniqueViolation reports whether err came from a unique index, optionally
// a specific one.
func IsUniqueViolation(err error, constraint string) bool {
	return isCode(err, codeUniqueViolation, constraint)
}

// IsCheckViolation reports whether err came from a CHECK constraint.
func IsCheckViolation(err error, constraint string) bool {
	return isCode(err, codeCheckViolation, constraint)
}

func isCode(err error, code pq.ErrorCode, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != code {
		return false
	}

	return constraint == "" || pqErr.Constraint == constraint
}

// DBName applies the optional database prefix, used to isolate test runs.
func DBName(cfg *config.Config, baseName string) string {
	return cfg.DB.Postgres.Prefix + baseName
}

// DSN builds a lib/pq URL. Extra params are appended to the query string,
// e.g. x-migrations-table for golang-migrate.
func DSN(cfg *config.Config, endpoint config.PostgresEndpoint, params url.Values) string {
	query := url.Values{}
	query.Set("sslmode", endpoint.SSLMode)

	if endpoint.Timezone != "" {
		query.Set("timezone", endpoint.Timezone)
	}

	for key, values := range params {
		query[key] = values
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(endpoint.Username, endpoint.Password),
		Host:     net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:     "/" + DBName(cfg, endpoint.Name),
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func connect(cfg *config.Config, name string, endpoint config.PostgresEndpoint) *sqlx.DB {
	logger := log.With().
		Str("name", name).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("dbName", DBName(cfg, endpoint.Name)).
		Logger()

	dsn := DSN(cfg, endpoint, nil)

	for attempt := 1; attempt <= max(cfg.DB.Postgres.MaxRetry, 1); attempt++ {
		db, err := sqlx.Connect("postgres", dsn)
		if err == nil {
			db.SetMaxIdleConns(postgresMaxIdleConnection)
			db.SetMaxOpenConns(postgresMaxOpenConnection)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(cfg.DB.Postgres.RetryWaitTime) * time.Second)
	}

	logger.Fatal().Msg("Giving up connecting to database")

	return nil
}
