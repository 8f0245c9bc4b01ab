package store

import (
	"context"
	"sort"
	"sync"

	"pessoas/internal/address/models"
	id "pessoas/pkg/domain"
	"pessoas/pkg/platform/sentinel"
)

// MemoryStore is an in-memory address store used in tests and local runs.
type MemoryStore struct {
	mu       sync.RWMutex
	byID     map[id.AddressID]*models.Address
	byPerson map[id.PersonKey][]id.AddressID
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		byID:     make(map[id.AddressID]*models.Address),
		byPerson: make(map[id.PersonKey][]id.AddressID),
	}
}

func (s *MemoryStore) Create(_ context.Context, address *models.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[address.ID]; ok {
		return sentinel.ErrConflict
	}
	s.byID[address.ID] = address.Clone()
	s.byPerson[address.PersonKey] = append(s.byPerson[address.PersonKey], address.ID)
	return nil
}

func (s *MemoryStore) Update(_ context.Context, address *models.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[address.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.byID[address.ID] = address.Clone()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, addressID id.AddressID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	address, ok := s.byID[addressID]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byID, addressID)
	ids := s.byPerson[address.PersonKey]
	for i, existing := range ids {
		if existing == addressID {
			s.byPerson[address.PersonKey] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, addressID id.AddressID) (*models.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	address, ok := s.byID[addressID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return address.Clone(), nil
}

func (s *MemoryStore) ListByPerson(_ context.Context, personKey id.PersonKey) ([]*models.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byPerson[personKey]
	out := make([]*models.Address, 0, len(ids))
	for _, addressID := range ids {
		if address, ok := s.byID[addressID]; ok {
			out = append(out, address.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}
