package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"pessoas/internal/person/models"
	id "pessoas/pkg/domain"
	"pessoas/pkg/platform/sentinel"
)

// MemoryStore is an in-memory Store for tests and local development.
// Secondary indexes mirror what the SQL schema enforces: a unique
// (type, value) pair per identifier and a normalized-name lookup.
type MemoryStore struct {
	mu      sync.RWMutex
	people  map[id.PersonKey]*models.Person
	byName  map[string][]id.PersonKey
	byIdent map[identKey]id.PersonKey
	// order preserves insertion sequence for stable List output.
	order []id.PersonKey
}

type identKey struct {
	Type  id.IdentifierType
	Value string
}

// NewMemory creates an empty in-memory person store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		people:  make(map[id.PersonKey]*models.Person),
		byName:  make(map[string][]id.PersonKey),
		byIdent: make(map[identKey]id.PersonKey),
	}
}

func (s *MemoryStore) Create(ctx context.Context, person *models.Person) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.people[person.Key]; exists {
		return sentinel.ErrConflict
	}
	for _, ident := range person.Identifiers {
		if _, taken := s.byIdent[identKey{ident.Type, ident.Value}]; taken {
			return sentinel.ErrConflict
		}
	}

	s.people[person.Key] = person.Clone()
	s.order = append(s.order, person.Key)
	s.index(person)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, key id.PersonKey) (*models.Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	person, ok := s.people[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return person.Clone(), nil
}

func (s *MemoryStore) Update(ctx context.Context, person *models.Person) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.people[person.Key]
	if !ok {
		return sentinel.ErrNotFound
	}
	for _, ident := range person.Identifiers {
		if owner, taken := s.byIdent[identKey{ident.Type, ident.Value}]; taken && owner != person.Key {
			return sentinel.ErrConflict
		}
	}

	s.unindex(existing)
	s.people[person.Key] = person.Clone()
	s.index(person)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, limit, offset int) ([]*models.Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Newest first, matching the SQL store's ORDER BY created_at DESC.
	result := make([]*models.Person, 0, limit)
	for i := len(s.order) - 1 - offset; i >= 0 && len(result) < limit; i-- {
		result = append(result, s.people[s.order[i]].Clone())
	}
	return result, nil
}

func (s *MemoryStore) FindByNormalizedName(ctx context.Context, normalized string, birthDate id.BirthDate) (*models.Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, key := range s.byName[normalized] {
		person := s.people[key]
		if person.Status == id.PersonStatusMerged {
			continue
		}
		if !birthDate.IsZero() && !person.BirthDate.Equal(birthDate) {
			continue
		}
		return person.Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *MemoryStore) ListNameCandidates(ctx context.Context, normalized string) ([]*models.Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tokens := strings.Fields(normalized)
	if len(tokens) == 0 {
		return nil, nil
	}
	wanted := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		wanted[tok] = struct{}{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Person
	for _, person := range s.people {
		if person.Status == id.PersonStatusMerged {
			continue
		}
		for _, tok := range strings.Fields(person.Name.Normalized()) {
			if _, ok := wanted[tok]; ok {
				result = append(result, person.Clone())
				break
			}
		}
	}
	sortByKey(result)
	return result, nil
}

func (s *MemoryStore) ListBirthDateCandidates(ctx context.Context, birthDate id.BirthDate, windowDays int) ([]*models.Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if birthDate.IsZero() {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Person
	for _, person := range s.people {
		if person.Status == id.PersonStatusMerged || person.BirthDate.IsZero() {
			continue
		}
		if person.BirthDate.DaysApart(birthDate) <= windowDays {
			result = append(result, person.Clone())
		}
	}
	sortByKey(result)
	return result, nil
}

func (s *MemoryStore) FindByIdentifier(ctx context.Context, identType id.IdentifierType, value string) (*models.Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	key, ok := s.byIdent[identKey{identType, value}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.people[key].Clone(), nil
}

// index and unindex must be called with the write lock held.

func (s *MemoryStore) index(person *models.Person) {
	norm := person.Name.Normalized()
	s.byName[norm] = append(s.byName[norm], person.Key)
	for _, ident := range person.Identifiers {
		s.byIdent[identKey{ident.Type, ident.Value}] = person.Key
	}
}

func (s *MemoryStore) unindex(person *models.Person) {
	norm := person.Name.Normalized()
	keys := s.byName[norm]
	for i, k := range keys {
		if k == person.Key {
			s.byName[norm] = append(keys[:i], keys[i+1:]...)
			break
		}
	}
	if len(s.byName[norm]) == 0 {
		delete(s.byName, norm)
	}
	for _, ident := range person.Identifiers {
		delete(s.byIdent, identKey{ident.Type, ident.Value})
	}
}

// sortByKey gives map-iteration results a deterministic order.
func sortByKey(people []*models.Person) {
	sort.Slice(people, func(i, j int) bool {
		return people[i].Key.String() < people[j].Key.String()
	})
}
