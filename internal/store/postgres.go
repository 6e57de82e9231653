package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"

	"github.com/dkazarin/mpdbmigrate/internal/models"
	"github.com/dkazarin/mpdbmigrate/internal/store/migrations"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// PostgresStore is the PostgreSQL-backed profile store.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens the destination database, verifies connectivity
// with bounded retry, and applies the embedded schema migrations.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	backoff := retry.WithMaxRetries(3, retry.NewExponential(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		return retry.RetryableError(db.PingContext(ctx))
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to profile store: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.runMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return s, nil
}

// runMigrations sets up goose with the embedded migrations and runs them
// against the destination database.
func (s *PostgresStore) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return gooseUpContext(ctx, s.db, ".")
}

// Wipe empties the profile store. TRUNCATE on an already-empty table is a
// no-op, so the wipe is idempotent.
func (s *PostgresStore) Wipe(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `TRUNCATE TABLE users CASCADE`); err != nil {
		return fmt.Errorf("wiping profile store: %w", err)
	}
	return nil
}

func (s *PostgresStore) EnsureUser(ctx context.Context, user models.User) error {
	query :=
		`INSERT INTO users (uuid, username)
		 VALUES ($1, $2)
		 ON CONFLICT (uuid) DO UPDATE SET username = EXCLUDED.username
		 `

	if _, err := s.db.ExecContext(ctx, query, user.ID, user.Name); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *PostgresStore) WriteProfile(ctx context.Context, user models.User, profile *models.Profile, cause models.SaveCause) error {
	doc, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshalling profile: %w", err)
	}

	query :=
		`INSERT INTO user_data (user_uuid, profile, format_version, save_cause)
		 VALUES ($1, $2, $3, $4)
		 `

	if _, err := s.db.ExecContext(ctx, query, user.ID, doc, profile.FormatVersion, string(cause)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
