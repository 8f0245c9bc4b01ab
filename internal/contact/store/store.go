// Package store persists contacts.
package store

import (
	"context"

	"pessoas/internal/contact/models"
	id "pessoas/pkg/domain"
)

// Store is the persistence boundary for contacts.
type Store interface {
	Create(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, contactID id.ContactID) error
	Get(ctx context.Context, contactID id.ContactID) (*models.Contact, error)
	ListByPerson(ctx context.Context, personKey id.PersonKey) ([]*models.Contact, error)
}
