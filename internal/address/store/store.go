// Package store persists addresses.
package store

import (
	"context"

	"pessoas/internal/address/models"
	id "pessoas/pkg/domain"
)

// Store is the persistence boundary for addresses.
type Store interface {
	Create(ctx context.Context, address *models.Address) error
	Update(ctx context.Context, address *models.Address) error
	Delete(ctx context.Context, addressID id.AddressID) error
	Get(ctx context.Context, addressID id.AddressID) (*models.Address, error)
	ListByPerson(ctx context.Context, personKey id.PersonKey) ([]*models.Address, error)
}
