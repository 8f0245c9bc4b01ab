package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"pessoas/internal/address/models"
	id "pessoas/pkg/domain"
	"pessoas/pkg/platform/sentinel"
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostgresStore persists addresses in PostgreSQL.
type PostgresStore struct {
	q querier
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{q: db}
}

const addressColumns = `
	id, person_key, type_code, street, number, complement, district,
	locality_id, postal_code, created_at, updated_at
`

func (s *PostgresStore) Create(ctx context.Context, address *models.Address) error {
	query := `
		INSERT INTO addresses (` + addressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.q.ExecContext(ctx, query, addressRowArgs(address)...)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create address: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, address *models.Address) error {
	query := `
		UPDATE addresses
		SET street = $2, number = $3, complement = $4, district = $5,
		    locality_id = $6, postal_code = $7, updated_at = $8
		WHERE id = $1
	`
	var localityID any
	if !address.LocalityID.IsNil() {
		localityID = address.LocalityID.String()
	}
	res, err := s.q.ExecContext(ctx, query,
		address.ID.String(), address.Street, address.Number, address.Complement,
		address.District, localityID, address.PostalCode, address.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, addressID id.AddressID) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM addresses WHERE id = $1`, addressID.String())
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) Get(ctx context.Context, addressID id.AddressID) (*models.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1`
	address, err := scanAddress(s.q.QueryRowContext(ctx, query, addressID.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get address: %w", err)
	}
	return address, nil
}

func (s *PostgresStore) ListByPerson(ctx context.Context, personKey id.PersonKey) ([]*models.Address, error) {
	query := `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE person_key = $1
		ORDER BY created_at, id
	`
	rows, err := s.q.QueryContext(ctx, query, personKey.String())
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	var out []*models.Address
	for rows.Next() {
		address, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		out = append(out, address)
	}
	return out, rows.Err()
}

func addressRowArgs(address *models.Address) []any {
	var localityID any
	if !address.LocalityID.IsNil() {
		localityID = address.LocalityID.String()
	}
	return []any{
		address.ID.String(), address.PersonKey.String(), address.Type.Code(),
		address.Street, address.Number, address.Complement, address.District,
		localityID, address.PostalCode, address.CreatedAt, address.UpdatedAt,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAddress(row rowScanner) (*models.Address, error) {
	var (
		address          models.Address
		idStr, personStr string
		typeCode         int
		localityStr      sql.NullString
		created, updated time.Time
	)
	err := row.Scan(
		&idStr, &personStr, &typeCode, &address.Street, &address.Number,
		&address.Complement, &address.District, &localityStr, &address.PostalCode,
		&created, &updated,
	)
	if err != nil {
		return nil, err
	}
	if address.ID, err = id.ParseAddressID(idStr); err != nil {
		return nil, err
	}
	if address.PersonKey, err = id.ParsePersonKey(personStr); err != nil {
		return nil, err
	}
	addrType, ok := id.AddressTypeFromCode(typeCode)
	if !ok {
		return nil, fmt.Errorf("unknown address type code %d", typeCode)
	}
	address.Type = addrType
	if localityStr.Valid {
		if address.LocalityID, err = id.ParseLocalityID(localityStr.String); err != nil {
			return nil, err
		}
	}
	address.CreatedAt = created.UTC()
	address.UpdatedAt = updated.UTC()
	return &address, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// Schema reference (managed outside this repository):
//
//	CREATE TABLE addresses (
//	    id          UUID PRIMARY KEY,
//	    person_key  UUID NOT NULL REFERENCES people (key),
//	    type_code   INT NOT NULL,
//	    street      TEXT NOT NULL,
//	    number      TEXT NOT NULL DEFAULT '',
//	    complement  TEXT NOT NULL DEFAULT '',
//	    district    TEXT NOT NULL DEFAULT '',
//	    locality_id UUID,
//	    postal_code CHAR(8) NOT NULL,
//	    created_at  TIMESTAMPTZ NOT NULL,
//	    updated_at  TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX addresses_person_key_idx ON addresses (person_key);
