package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"pessoas/internal/contact/models"
	id "pessoas/pkg/domain"
	"pessoas/pkg/platform/sentinel"
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostgresStore persists contacts in PostgreSQL.
type PostgresStore struct {
	q querier
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{q: db}
}

const contactColumns = `id, person_key, type_code, value, created_at`

func (s *PostgresStore) Create(ctx context.Context, contact *models.Contact) error {
	query := `
		INSERT INTO contacts (` + contactColumns + `)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.q.ExecContext(ctx, query,
		contact.ID.String(), contact.PersonKey.String(), contact.Type.Code(),
		contact.Value, contact.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create contact: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, contactID id.ContactID) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, contactID.String())
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, contactID id.ContactID) (*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`
	contact, err := scanContact(s.q.QueryRowContext(ctx, query, contactID.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return contact, nil
}

func (s *PostgresStore) ListByPerson(ctx context.Context, personKey id.PersonKey) ([]*models.Contact, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE person_key = $1
		ORDER BY created_at, id
	`
	rows, err := s.q.QueryContext(ctx, query, personKey.String())
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var out []*models.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		out = append(out, contact)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*models.Contact, error) {
	var (
		contact          models.Contact
		idStr, personStr string
		typeCode         int
		created          time.Time
	)
	if err := row.Scan(&idStr, &personStr, &typeCode, &contact.Value, &created); err != nil {
		return nil, err
	}
	var err error
	if contact.ID, err = id.ParseContactID(idStr); err != nil {
		return nil, err
	}
	if contact.PersonKey, err = id.ParsePersonKey(personStr); err != nil {
		return nil, err
	}
	contactType, ok := id.ContactTypeFromCode(typeCode)
	if !ok {
		return nil, fmt.Errorf("unknown contact type code %d", typeCode)
	}
	contact.Type = contactType
	contact.CreatedAt = created.UTC()
	return &contact, nil
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
//	CREATE TABLE contacts (
//	    id         UUID PRIMARY KEY,
//	    person_key UUID NOT NULL REFERENCES people (key),
//	    type_code  INT NOT NULL,
//	    value      TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL,
//	    UNIQUE (person_key, type_code, value)
//	);
//	CREATE INDEX contacts_person_key_idx ON contacts (person_key);
