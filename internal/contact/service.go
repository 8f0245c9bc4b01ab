// Package contact manages the contact points attached to people.
package contact

import (
	"context"
	"log/slog"

	"pessoas/internal/contact/models"
	"pessoas/internal/contact/store"
	personmodels "pessoas/internal/person/models"
	id "pessoas/pkg/domain"
	dErrors "pessoas/pkg/domain-errors"
	"pessoas/pkg/requestcontext"
)

// PersonResolver looks up the person a contact is being attached to.
type PersonResolver interface {
	Get(ctx context.Context, key id.PersonKey) (*personmodels.Person, error)
}

// Service implements the contact operations.
type Service struct {
	store  store.Store
	people PersonResolver
	logger *slog.Logger
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New constructs a Service.
func New(st store.Store, people PersonResolver, opts ...Option) *Service {
	s := &Service{store: st, people: people, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add attaches a contact to an existing person. Duplicate (type, value) pairs
// on the same person are rejected by the store.
func (s *Service) Add(ctx context.Context, personKey id.PersonKey, req *models.AddContactRequest) (*models.Contact, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	person, err := s.people.Get(ctx, personKey)
	if err != nil {
		return nil, err
	}
	if person.Status == id.PersonStatusMerged {
		return nil, dErrors.New(dErrors.CodeInvalidState, "person was merged into another record")
	}

	contactType, err := id.ParseContactType(req.Type)
	if err != nil {
		return nil, err
	}
	contact, err := models.NewContact(personKey, contactType, req.Value, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, contact); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "contact added",
		slog.String("person_key", personKey.String()),
		slog.String("contact_id", contact.ID.String()),
		slog.String("type", contact.Type.String()),
	)
	return contact, nil
}

// Remove deletes a contact. Ownership mismatches read as not found.
func (s *Service) Remove(ctx context.Context, personKey id.PersonKey, contactID id.ContactID) error {
	if contactID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "contact id is required")
	}
	contact, err := s.store.Get(ctx, contactID)
	if err != nil {
		return err
	}
	if contact.PersonKey != personKey {
		return dErrors.New(dErrors.CodeNotFound, "contact not found for person")
	}
	return s.store.Delete(ctx, contactID)
}

// ListByPerson returns a person's contacts, oldest first.
func (s *Service) ListByPerson(ctx context.Context, personKey id.PersonKey) ([]*models.Contact, error) {
	if personKey.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "person key is required")
	}
	return s.store.ListByPerson(ctx, personKey)
}
