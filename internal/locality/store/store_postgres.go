package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pessoas/internal/locality/models"
	id "pessoas/pkg/domain"
	"pessoas/pkg/platform/sentinel"
)

// PostgresStore persists localities in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const localityColumns = `id, type_code, code, name, normalized_name, parent_id`

func (s *PostgresStore) Upsert(ctx context.Context, locality *models.Locality) error {
	query := `
		INSERT INTO localities (` + localityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			type_code = EXCLUDED.type_code,
			code = EXCLUDED.code,
			name = EXCLUDED.name,
			normalized_name = EXCLUDED.normalized_name,
			parent_id = EXCLUDED.parent_id
	`
	var parentID any
	if !locality.ParentID.IsNil() {
		parentID = locality.ParentID.String()
	}
	_, err := s.db.ExecContext(ctx, query,
		locality.ID.String(), locality.Type.Code(), locality.Code,
		locality.Name, locality.NormalizedName, parentID,
	)
	if err != nil {
		return fmt.Errorf("upsert locality: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, localityID id.LocalityID) (*models.Locality, error) {
	query := `SELECT ` + localityColumns + ` FROM localities WHERE id = $1`
	return s.one(ctx, query, localityID.String())
}

func (s *PostgresStore) GetByCode(ctx context.Context, code string) (*models.Locality, error) {
	query := `SELECT ` + localityColumns + ` FROM localities WHERE code = $1`
	return s.one(ctx, query, code)
}

func (s *PostgresStore) ListByType(ctx context.Context, localityType id.LocalityType) ([]*models.Locality, error) {
	query := `
		SELECT ` + localityColumns + `
		FROM localities
		WHERE type_code = $1
		ORDER BY normalized_name, code
	`
	return s.many(ctx, query, localityType.Code())
}

func (s *PostgresStore) Search(ctx context.Context, namePrefix string, limit int) ([]*models.Locality, error) {
	query := `
		SELECT ` + localityColumns + `
		FROM localities
		WHERE normalized_name LIKE $1 || '%'
		ORDER BY normalized_name, code
		LIMIT $2
	`
	return s.many(ctx, query, namePrefix, limit)
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]*models.Locality, error) {
	query := `SELECT ` + localityColumns + ` FROM localities ORDER BY normalized_name, code`
	return s.many(ctx, query)
}

func (s *PostgresStore) one(ctx context.Context, query string, args ...any) (*models.Locality, error) {
	locality, err := scanLocality(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get locality: %w", err)
	}
	return locality, nil
}

func (s *PostgresStore) many(ctx context.Context, query string, args ...any) ([]*models.Locality, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list localities: %w", err)
	}
	defer rows.Close()

	var out []*models.Locality
	for rows.Next() {
		locality, err := scanLocality(rows)
		if err != nil {
			return nil, fmt.Errorf("scan locality: %w", err)
		}
		out = append(out, locality)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLocality(row rowScanner) (*models.Locality, error) {
	var (
		locality  models.Locality
		idStr     string
		typeCode  int
		parentStr sql.NullString
	)
	err := row.Scan(&idStr, &typeCode, &locality.Code, &locality.Name, &locality.NormalizedName, &parentStr)
	if err != nil {
		return nil, err
	}
	if locality.ID, err = id.ParseLocalityID(idStr); err != nil {
		return nil, err
	}
	localityType, ok := id.LocalityTypeFromCode(typeCode)
	if !ok {
		return nil, fmt.Errorf("unknown locality type code %d", typeCode)
	}
	locality.Type = localityType
	if parentStr.Valid {
		if locality.ParentID, err = id.ParseLocalityID(parentStr.String); err != nil {
			return nil, err
		}
	}
	return &locality, nil
}

// Schema reference (managed outside this repository):
//
//	CREATE TABLE localities (
//	    id              UUID PRIMARY KEY,
//	    type_code       INT NOT NULL,
//	    code            TEXT NOT NULL UNIQUE,
//	    name            TEXT NOT NULL,
//	    normalized_name TEXT NOT NULL,
//	    parent_id       UUID REFERENCES localities (id)
//	);
//	CREATE INDEX localities_type_code_idx ON localities (type_code);
//	CREATE INDEX localities_normalized_name_idx ON localities (normalized_name text_pattern_ops);
