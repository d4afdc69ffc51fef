package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/quoteflow/quote-service/internal/config"
	"github.com/quoteflow/quote-service/internal/logger"
)

// IClient is the database surface services depend on. Tests substitute a
// client that runs transaction bodies directly.
type IClient interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	Ping(ctx context.Context) error
}

// DB wraps sqlx.DB with transaction management. Repositories never touch the
// sqlx handle directly; they go through GetQuerier so a transaction carried
// in the context is honored transparently.
type DB struct {
	*sqlx.DB
	logger *logger.Logger
}

// Querier is the subset of sqlx operations repositories use. Both *sqlx.DB
// and *sqlx.Tx satisfy it.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

// NewDB opens the connection pool and optionally runs pending migrations.
func NewDB(cfg *config.Configuration, log *logger.Logger) (*DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Postgres.DSN())
	if err != nil {
		return nil, err
	}

	if cfg.Postgres.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	}
	if cfg.Postgres.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	}
	if cfg.Postgres.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
	}

	wrapped := &DB{DB: db, logger: log}

	if cfg.Postgres.AutoMigrate {
		if err := wrapped.Migrate(); err != nil {
			db.Close()
			return nil, err
		}
	}
	return wrapped, nil
}

// Migrate applies pending migrations from the migrations directory.
func (db *DB) Migrate() error {
	driver, err := postgres.WithInstance(db.DB.DB, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	db.logger.Infow("database migrations applied")
	return nil
}

// Close closes the pool.
func (db *DB) Close() {
	if err := db.DB.Close(); err != nil {
		db.logger.Errorw("error closing database", "error", err)
	}
}

// GetQuerier returns the transaction from the context when one is in flight,
// otherwise the base pool.
func (db *DB) GetQuerier(ctx context.Context) Querier {
	if tx, ok := GetTx(ctx); ok {
		return tx.Tx
	}
	return db.DB
}

// Ping verifies connectivity for the health endpoint.
func (db *DB) Ping(ctx context.Context) error {
	return db.DB.PingContext(ctx)
}
