package store

import (
	"context"
	"sort"
	"sync"

	"pessoas/internal/contact/models"
	id "pessoas/pkg/domain"
	"pessoas/pkg/platform/sentinel"
)

// MemoryStore is an in-memory contact store used in tests and local runs.
// A person cannot hold the same (type, value) pair twice.
type MemoryStore struct {
	mu       sync.RWMutex
	byID     map[id.ContactID]*models.Contact
	byPerson map[id.PersonKey][]id.ContactID
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		byID:     make(map[id.ContactID]*models.Contact),
		byPerson: make(map[id.PersonKey][]id.ContactID),
	}
}

func (s *MemoryStore) Create(_ context.Context, contact *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[contact.ID]; ok {
		return sentinel.ErrConflict
	}
	for _, existingID := range s.byPerson[contact.PersonKey] {
		existing := s.byID[existingID]
		if existing.Type == contact.Type && existing.Value == contact.Value {
			return sentinel.ErrConflict
		}
	}
	s.byID[contact.ID] = contact.Clone()
	s.byPerson[contact.PersonKey] = append(s.byPerson[contact.PersonKey], contact.ID)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, contactID id.ContactID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	contact, ok := s.byID[contactID]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byID, contactID)
	ids := s.byPerson[contact.PersonKey]
	for i, existing := range ids {
		if existing == contactID {
			s.byPerson[contact.PersonKey] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, contactID id.ContactID) (*models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	contact, ok := s.byID[contactID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return contact.Clone(), nil
}

func (s *MemoryStore) ListByPerson(_ context.Context, personKey id.PersonKey) ([]*models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byPerson[personKey]
	out := make([]*models.Contact, 0, len(ids))
	for _, contactID := range ids {
		if contact, ok := s.byID[contactID]; ok {
			out = append(out, contact.Clone())
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
