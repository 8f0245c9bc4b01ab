// Package store persists the person aggregate. Stores are pure I/O; all
// domain logic (lifecycle checks, dedup scoring) belongs in the services.
package store

import (
	"context"

	"pessoas/internal/person/models"
	id "pessoas/pkg/domain"
)

// Store is the persistence port for people. Implementations return
// sentinel.ErrNotFound for missing rows and sentinel.ErrConflict for unique
// violations (duplicate alternate key or identifier pair).
type Store interface {
	// Create inserts a new person with its identifiers.
	Create(ctx context.Context, person *models.Person) error

	// Get fetches a person by alternate key.
	Get(ctx context.Context, key id.PersonKey) (*models.Person, error)

	// Update rewrites the person row and its identifier set.
	Update(ctx context.Context, person *models.Person) error

	// List returns people ordered by creation time, newest first.
	List(ctx context.Context, limit, offset int) ([]*models.Person, error)

	// FindByNormalizedName performs the exact-duplicate lookup: equality on the
	// normalized full name and, when birthDate is non-zero, on the birth date.
	// Merged people never match.
	FindByNormalizedName(ctx context.Context, normalized string, birthDate id.BirthDate) (*models.Person, error)

	// ListNameCandidates returns non-merged people whose normalized name shares
	// at least one token with the query name. This is the prefilter feeding the
	// fuzzy matcher; callers re-score every candidate.
	ListNameCandidates(ctx context.Context, normalized string) ([]*models.Person, error)

	// ListBirthDateCandidates returns non-merged people whose birth date lies
	// within windowDays of the given date.
	ListBirthDateCandidates(ctx context.Context, birthDate id.BirthDate, windowDays int) ([]*models.Person, error)

	// FindByIdentifier performs the exact, case-sensitive lookup on an external
	// identifier pair.
	FindByIdentifier(ctx context.Context, identType id.IdentifierType, value string) (*models.Person, error)
}
