// Package store persists the locality hierarchy.
package store

import (
	"context"

	"pessoas/internal/locality/models"
	id "pessoas/pkg/domain"
)

// Store is the persistence boundary for localities. The dataset is reference
// data loaded out of band, so writes are limited to Upsert.
type Store interface {
	Upsert(ctx context.Context, locality *models.Locality) error
	Get(ctx context.Context, localityID id.LocalityID) (*models.Locality, error)
	GetByCode(ctx context.Context, code string) (*models.Locality, error)
	ListByType(ctx context.Context, localityType id.LocalityType) ([]*models.Locality, error)
	Search(ctx context.Context, namePrefix string, limit int) ([]*models.Locality, error)
	ListAll(ctx context.Context) ([]*models.Locality, error)
}
