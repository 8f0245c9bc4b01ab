package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"pessoas/internal/person/models"
	id "pessoas/pkg/domain"
	"pessoas/pkg/platform/sentinel"
)

// querier is satisfied by both *sql.DB and *sql.Tx so the same store code
// serves direct reads and the RunInTx boundary.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostgresStore persists people in PostgreSQL.
type PostgresStore struct {
	q querier
}

// NewPostgres constructs a PostgreSQL-backed person store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{q: db}
}

// NewPostgresTx constructs a store scoped to an open transaction.
func NewPostgresTx(tx *sql.Tx) *PostgresStore {
	return &PostgresStore{q: tx}
}

const personColumns = `
	key, first_name, middle_name, last_name, social_name,
	birth_date, gender_code, status_code, merged_into, created_at, updated_at
`

func (s *PostgresStore) Create(ctx context.Context, person *models.Person) error {
	query := `
		INSERT INTO people (` + personColumns + `, normalized_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.q.ExecContext(ctx, query, personRowArgs(person)...)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create person: %w", err)
	}
	if err := s.replaceIdentifiers(ctx, person); err != nil {
		return err
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key id.PersonKey) (*models.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people WHERE key = $1`
	person, err := scanPerson(s.q.QueryRowContext(ctx, query, key.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get person: %w", err)
	}
	if err := s.loadIdentifiers(ctx, []*models.Person{person}); err != nil {
		return nil, err
	}
	return person, nil
}

func (s *PostgresStore) Update(ctx context.Context, person *models.Person) error {
	query := `
		UPDATE people SET
			first_name = $2, middle_name = $3, last_name = $4, social_name = $5,
			birth_date = $6, gender_code = $7, status_code = $8, merged_into = $9,
			created_at = $10, updated_at = $11, normalized_name = $12
		WHERE key = $1
	`
	result, err := s.q.ExecContext(ctx, query, personRowArgs(person)...)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("update person: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}

	if _, err := s.q.ExecContext(ctx, `DELETE FROM person_identifiers WHERE person_key = $1`, person.Key.String()); err != nil {
		return fmt.Errorf("clear person identifiers: %w", err)
	}
	return s.replaceIdentifiers(ctx, person)
}

func (s *PostgresStore) List(ctx context.Context, limit, offset int) ([]*models.Person, error) {
	query := `
		SELECT ` + personColumns + `
		FROM people
		ORDER BY created_at DESC, key
		LIMIT $1 OFFSET $2
	`
	return s.queryPeople(ctx, query, limit, offset)
}

func (s *PostgresStore) FindByNormalizedName(ctx context.Context, normalized string, birthDate id.BirthDate) (*models.Person, error) {
	query := `
		SELECT ` + personColumns + `
		FROM people
		WHERE normalized_name = $1
		  AND status_code <> $2
		  AND ($3::date IS NULL OR birth_date = $3)
		ORDER BY key
		LIMIT 1
	`
	row := s.q.QueryRowContext(ctx, query, normalized, id.PersonStatusMerged.Code(), birthDateArg(birthDate))
	person, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find person by name: %w", err)
	}
	if err := s.loadIdentifiers(ctx, []*models.Person{person}); err != nil {
		return nil, err
	}
	return person, nil
}

func (s *PostgresStore) ListNameCandidates(ctx context.Context, normalized string) ([]*models.Person, error) {
	tokens := strings.Fields(normalized)
	if len(tokens) == 0 {
		return nil, nil
	}
	// Array-overlap against the tokenized name keeps the candidate set small
	// without needing a trigram extension.
	query := `
		SELECT ` + personColumns + `
		FROM people
		WHERE status_code <> $1
		  AND string_to_array(normalized_name, ' ') && $2
		ORDER BY key
	`
	return s.queryPeople(ctx, query, id.PersonStatusMerged.Code(), pq.Array(tokens))
}

func (s *PostgresStore) ListBirthDateCandidates(ctx context.Context, birthDate id.BirthDate, windowDays int) ([]*models.Person, error) {
	if birthDate.IsZero() {
		return nil, nil
	}
	query := `
		SELECT ` + personColumns + `
		FROM people
		WHERE status_code <> $1
		  AND birth_date BETWEEN $2::date - $3::int AND $2::date + $3::int
		ORDER BY key
	`
	return s.queryPeople(ctx, query, id.PersonStatusMerged.Code(), birthDate.Time(), windowDays)
}

func (s *PostgresStore) FindByIdentifier(ctx context.Context, identType id.IdentifierType, value string) (*models.Person, error) {
	query := `
		SELECT ` + personColumns + `
		FROM people
		WHERE key = (
			SELECT person_key FROM person_identifiers
			WHERE type = $1 AND value = $2
		)
	`
	person, err := scanPerson(s.q.QueryRowContext(ctx, query, identType.String(), value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find person by identifier: %w", err)
	}
	if err := s.loadIdentifiers(ctx, []*models.Person{person}); err != nil {
		return nil, err
	}
	return person, nil
}

func (s *PostgresStore) queryPeople(ctx context.Context, query string, args ...any) ([]*models.Person, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query people: %w", err)
	}
	defer rows.Close()

	var people []*models.Person
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		people = append(people, person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate people: %w", err)
	}
	if err := s.loadIdentifiers(ctx, people); err != nil {
		return nil, err
	}
	return people, nil
}

func (s *PostgresStore) replaceIdentifiers(ctx context.Context, person *models.Person) error {
	for _, ident := range person.Identifiers {
		_, err := s.q.ExecContext(ctx,
			`INSERT INTO person_identifiers (person_key, type, value) VALUES ($1, $2, $3)`,
			person.Key.String(), ident.Type.String(), ident.Value,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return sentinel.ErrConflict
			}
			return fmt.Errorf("insert person identifier: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) loadIdentifiers(ctx context.Context, people []*models.Person) error {
	if len(people) == 0 {
		return nil
	}
	keys := make([]string, len(people))
	byKey := make(map[id.PersonKey]*models.Person, len(people))
	for i, p := range people {
		keys[i] = p.Key.String()
		byKey[p.Key] = p
	}

	rows, err := s.q.QueryContext(ctx,
		`SELECT person_key, type, value FROM person_identifiers WHERE person_key = ANY($1) ORDER BY type, value`,
		pq.Array(keys),
	)
	if err != nil {
		return fmt.Errorf("load person identifiers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rawKey, rawType, value string
		if err := rows.Scan(&rawKey, &rawType, &value); err != nil {
			return fmt.Errorf("scan person identifier: %w", err)
		}
		key, err := id.ParsePersonKey(rawKey)
		if err != nil {
			return fmt.Errorf("parse identifier owner key: %w", err)
		}
		if person, ok := byKey[key]; ok {
			person.Identifiers = append(person.Identifiers, models.ExternalIdentifier{
				Type:  id.IdentifierType(rawType),
				Value: value,
			})
		}
	}
	return rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (*models.Person, error) {
	var (
		rawKey     string
		middle     sql.NullString
		social     sql.NullString
		birthDate  sql.NullTime
		genderCode sql.NullInt64
		statusCode int
		mergedInto sql.NullString
		person     models.Person
	)
	err := row.Scan(
		&rawKey, &person.Name.First, &middle, &person.Name.Last, &social,
		&birthDate, &genderCode, &statusCode, &mergedInto,
		&person.CreatedAt, &person.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	key, err := id.ParsePersonKey(rawKey)
	if err != nil {
		return nil, fmt.Errorf("parse person key: %w", err)
	}
	person.Key = key
	person.Name.Middle = middle.String
	person.Name.Social = social.String

	if birthDate.Valid {
		d, err := id.NewBirthDate(birthDate.Time.Year(), birthDate.Time.Month(), birthDate.Time.Day())
		if err != nil {
			return nil, fmt.Errorf("parse birth date: %w", err)
		}
		person.BirthDate = d
	}
	if genderCode.Valid {
		if g, ok := id.GenderFromCode(int(genderCode.Int64)); ok {
			person.Gender = g
		}
	}
	status, ok := id.PersonStatusFromCode(statusCode)
	if !ok {
		return nil, fmt.Errorf("unknown person status code %d", statusCode)
	}
	person.Status = status
	if mergedInto.Valid {
		target, err := id.ParsePersonKey(mergedInto.String)
		if err != nil {
			return nil, fmt.Errorf("parse merged_into key: %w", err)
		}
		person.MergedInto = target
	}
	return &person, nil
}

func personRowArgs(person *models.Person) []any {
	return []any{
		person.Key.String(),
		person.Name.First,
		nullString(person.Name.Middle),
		person.Name.Last,
		nullString(person.Name.Social),
		birthDateArg(person.BirthDate),
		genderArg(person.Gender),
		person.Status.Code(),
		mergedIntoArg(person.MergedInto),
		person.CreatedAt,
		person.UpdatedAt,
		person.Name.Normalized(),
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func birthDateArg(d id.BirthDate) any {
	if d.IsZero() {
		return nil
	}
	return d.Time()
}

func genderArg(g id.Gender) any {
	if g.IsZero() {
		return nil
	}
	return g.Code()
}

func mergedIntoArg(key id.PersonKey) any {
	if key.IsNil() {
		return nil
	}
	return key.String()
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
//	CREATE TABLE people (
//		key             UUID PRIMARY KEY,
//		first_name      TEXT NOT NULL,
//		middle_name     TEXT,
//		last_name       TEXT NOT NULL,
//		social_name     TEXT,
//		normalized_name TEXT NOT NULL,
//		birth_date      DATE,
//		gender_code     INT,
//		status_code     INT NOT NULL,
//		merged_into     UUID REFERENCES people (key),
//		created_at      TIMESTAMPTZ NOT NULL,
//		updated_at      TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX people_normalized_name_idx ON people (normalized_name);
//	CREATE INDEX people_birth_date_idx ON people (birth_date);
//
//	CREATE TABLE person_identifiers (
//		person_key UUID NOT NULL REFERENCES people (key),
//		type       TEXT NOT NULL,
//		value      TEXT NOT NULL,
//		PRIMARY KEY (type, value)
//	);
