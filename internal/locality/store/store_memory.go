package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"pessoas/internal/locality/models"
	id "pessoas/pkg/domain"
	"pessoas/pkg/platform/sentinel"
)

// MemoryStore is an in-memory locality store used in tests and local runs.
type MemoryStore struct {
	mu     sync.RWMutex
	byID   map[id.LocalityID]*models.Locality
	byCode map[string]id.LocalityID
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		byID:   make(map[id.LocalityID]*models.Locality),
		byCode: make(map[string]id.LocalityID),
	}
}

func (s *MemoryStore) Upsert(_ context.Context, locality *models.Locality) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.byID[locality.ID]; ok {
		delete(s.byCode, existing.Code)
	}
	s.byID[locality.ID] = locality.Clone()
	s.byCode[locality.Code] = locality.ID
	return nil
}

func (s *MemoryStore) Get(_ context.Context, localityID id.LocalityID) (*models.Locality, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	locality, ok := s.byID[localityID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return locality.Clone(), nil
}

func (s *MemoryStore) GetByCode(_ context.Context, code string) (*models.Locality, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	localityID, ok := s.byCode[code]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.byID[localityID].Clone(), nil
}

func (s *MemoryStore) ListByType(_ context.Context, localityType id.LocalityType) ([]*models.Locality, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Locality
	for _, locality := range s.byID {
		if locality.Type == localityType {
			out = append(out, locality.Clone())
		}
	}
	sortByName(out)
	return out, nil
}

func (s *MemoryStore) Search(_ context.Context, namePrefix string, limit int) ([]*models.Locality, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Locality
	for _, locality := range s.byID {
		if strings.HasPrefix(locality.NormalizedName, namePrefix) {
			out = append(out, locality.Clone())
		}
	}
	sortByName(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) ListAll(_ context.Context) ([]*models.Locality, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Locality, 0, len(s.byID))
	for _, locality := range s.byID {
		out = append(out, locality.Clone())
	}
	sortByName(out)
	return out, nil
}

func sortByName(localities []*models.Locality) {
	sort.Slice(localities, func(i, j int) bool {
		if localities[i].NormalizedName != localities[j].NormalizedName {
			return localities[i].NormalizedName < localities[j].NormalizedName
		}
		return localities[i].Code < localities[j].Code
	})
}
