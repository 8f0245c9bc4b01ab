//go:build integration

package containers

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// schema mirrors the production DDL, which is managed outside this repository.
const schema = `
CREATE TABLE people (
    key             UUID PRIMARY KEY,
    first_name      TEXT NOT NULL,
    middle_name     TEXT,
    last_name       TEXT NOT NULL,
    social_name     TEXT,
    normalized_name TEXT NOT NULL,
    birth_date      DATE,
    gender_code     INT,
    status_code     INT NOT NULL,
    merged_into     UUID REFERENCES people (key),
    created_at      TIMESTAMPTZ NOT NULL,
    updated_at      TIMESTAMPTZ NOT NULL
);
CREATE INDEX people_normalized_name_idx ON people (normalized_name);
CREATE INDEX people_birth_date_idx ON people (birth_date);

CREATE TABLE person_identifiers (
    person_key UUID NOT NULL REFERENCES people (key),
    type       TEXT NOT NULL,
    value      TEXT NOT NULL,
    PRIMARY KEY (type, value)
);

CREATE TABLE addresses (
    id          UUID PRIMARY KEY,
    person_key  UUID NOT NULL REFERENCES people (key),
    type_code   INT NOT NULL,
    street      TEXT NOT NULL,
    number      TEXT NOT NULL DEFAULT '',
    complement  TEXT NOT NULL DEFAULT '',
    district    TEXT NOT NULL DEFAULT '',
    locality_id UUID,
    postal_code CHAR(8) NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX addresses_person_key_idx ON addresses (person_key);

CREATE TABLE contacts (
    id         UUID PRIMARY KEY,
    person_key UUID NOT NULL REFERENCES people (key),
    type_code  INT NOT NULL,
    value      TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    UNIQUE (person_key, type_code, value)
);
CREATE INDEX contacts_person_key_idx ON contacts (person_key);

CREATE TABLE localities (
    id              UUID PRIMARY KEY,
    type_code       INT NOT NULL,
    code            TEXT NOT NULL UNIQUE,
    name            TEXT NOT NULL,
    normalized_name TEXT NOT NULL,
    parent_id       UUID REFERENCES localities (id)
);
CREATE INDEX localities_type_code_idx ON localities (type_code);
CREATE INDEX localities_normalized_name_idx ON localities (normalized_name text_pattern_ops);
`

// PostgresContainer wraps a testcontainers Postgres instance.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *sql.DB
}

// NewPostgresContainer starts a new Postgres container with the schema applied.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("pessoas_test"),
		postgres.WithUsername("pessoas"),
		postgres.WithPassword("pessoas_test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to connect to postgres: %v", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
		_ = container.Terminate(context.Background())
	})

	return &PostgresContainer{
		Container: container,
		DSN:       dsn,
		DB:        db,
	}
}

// TruncateAll clears all module tables for test isolation without restarting
// the container.
func (p *PostgresContainer) TruncateAll(ctx context.Context) error {
	tables := []string{
		"contacts",
		"addresses",
		"person_identifiers",
		"people",
		"localities",
	}
	for _, table := range tables {
		if _, err := p.DB.ExecContext(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}

// Exec runs a SQL statement and returns the result.
func (p *PostgresContainer) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return p.DB.ExecContext(ctx, query, args...)
}
