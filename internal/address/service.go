// Package address manages the postal addresses attached to people.
package address

import (
	"context"
	"log/slog"

	"pessoas/internal/address/models"
	"pessoas/internal/address/store"
	personmodels "pessoas/internal/person/models"
	id "pessoas/pkg/domain"
	dErrors "pessoas/pkg/domain-errors"
	"pessoas/pkg/requestcontext"
)

// PersonResolver looks up the person an address is being attached to.
type PersonResolver interface {
	Get(ctx context.Context, key id.PersonKey) (*personmodels.Person, error)
}

// Service implements the address operations.
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

// Add attaches an address to an existing person. Merged records cannot grow
// new addresses.
func (s *Service) Add(ctx context.Context, personKey id.PersonKey, req *models.AddAddressRequest) (*models.Address, error) {
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

	addrType, err := id.ParseAddressType(req.Type)
	if err != nil {
		return nil, err
	}
	var localityID id.LocalityID
	if req.LocalityID != "" {
		if localityID, err = id.ParseLocalityID(req.LocalityID); err != nil {
			return nil, err
		}
	}

	address, err := models.NewAddress(
		personKey, addrType, req.Street, req.Number, req.Complement,
		req.District, localityID, req.PostalCode, requestcontext.Now(ctx),
	)
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, address); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "address added",
		slog.String("person_key", personKey.String()),
		slog.String("address_id", address.ID.String()),
		slog.String("type", address.Type.String()),
	)
	return address, nil
}

// Update replaces the mutable fields of an address. The address type is fixed
// at creation.
func (s *Service) Update(ctx context.Context, personKey id.PersonKey, addressID id.AddressID, req *models.UpdateAddressRequest) (*models.Address, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	address, err := s.load(ctx, personKey, addressID)
	if err != nil {
		return nil, err
	}

	cep, err := models.NormalizeCEP(req.PostalCode)
	if err != nil {
		return nil, err
	}
	address.Street = req.Street
	address.Number = req.Number
	address.Complement = req.Complement
	address.District = req.District
	address.PostalCode = cep
	address.LocalityID = id.LocalityID{}
	if req.LocalityID != "" {
		if address.LocalityID, err = id.ParseLocalityID(req.LocalityID); err != nil {
			return nil, err
		}
	}
	address.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

// Remove deletes an address.
func (s *Service) Remove(ctx context.Context, personKey id.PersonKey, addressID id.AddressID) error {
	if _, err := s.load(ctx, personKey, addressID); err != nil {
		return err
	}
	return s.store.Delete(ctx, addressID)
}

// ListByPerson returns a person's addresses, oldest first.
func (s *Service) ListByPerson(ctx context.Context, personKey id.PersonKey) ([]*models.Address, error) {
	if personKey.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "person key is required")
	}
	return s.store.ListByPerson(ctx, personKey)
}

// load fetches an address and confirms it belongs to the given person.
// Ownership mismatches read as not found.
func (s *Service) load(ctx context.Context, personKey id.PersonKey, addressID id.AddressID) (*models.Address, error) {
	if addressID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "address id is required")
	}
	address, err := s.store.Get(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if address.PersonKey != personKey {
		return nil, dErrors.New(dErrors.CodeNotFound, "address not found for person")
	}
	return address, nil
}
