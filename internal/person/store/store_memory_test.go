package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pessoas/internal/person/models"
	id "pessoas/pkg/domain"
	"pessoas/pkg/platform/sentinel"
)

func newPerson(t *testing.T, first, last, birthDate string) *models.Person {
	t.Helper()
	name, err := models.NewPersonName(first, "", last, "")
	require.NoError(t, err)
	var bd id.BirthDate
	if birthDate != "" {
		bd = id.MustBirthDate(birthDate)
	}
	return models.NewPerson(name, bd, id.Gender{}, time.Now())
}

func TestMemoryStoreCreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	p := newPerson(t, "Maria", "Silva", "1990-01-15")
	require.NoError(t, s.Create(ctx, p))

	got, err := s.Get(ctx, p.Key)
	require.NoError(t, err)
	assert.Equal(t, p.Key, got.Key)
	assert.Equal(t, "Maria Silva", got.Name.Full())

	_, err = s.Get(ctx, id.NewPersonKey())
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	assert.ErrorIs(t, s.Create(ctx, p), sentinel.ErrConflict)
}

func TestMemoryStoreIdentifierUniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	first := newPerson(t, "Maria", "Silva", "")
	require.NoError(t, first.AddIdentifier(models.ExternalIdentifier{Type: id.IdentifierTypeCPF, Value: "52998224725"}, time.Now()))
	require.NoError(t, s.Create(ctx, first))

	second := newPerson(t, "Ana", "Souza", "")
	require.NoError(t, second.AddIdentifier(models.ExternalIdentifier{Type: id.IdentifierTypeCPF, Value: "52998224725"}, time.Now()))
	assert.ErrorIs(t, s.Create(ctx, second), sentinel.ErrConflict)

	// Same value under a different type is a distinct pair.
	second.Identifiers[0].Type = id.IdentifierTypeLegacy
	assert.NoError(t, s.Create(ctx, second))
}

func TestMemoryStoreFindByNormalizedName(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	p := newPerson(t, "José", "Conceição", "1990-01-15")
	require.NoError(t, s.Create(ctx, p))

	t.Run("matches diacritic-folded name", func(t *testing.T) {
		got, err := s.FindByNormalizedName(ctx, "jose conceicao", id.BirthDate{})
		require.NoError(t, err)
		assert.Equal(t, p.Key, got.Key)
	})

	t.Run("birth date must match when given", func(t *testing.T) {
		_, err := s.FindByNormalizedName(ctx, "jose conceicao", id.MustBirthDate("1991-01-15"))
		assert.ErrorIs(t, err, sentinel.ErrNotFound)

		got, err := s.FindByNormalizedName(ctx, "jose conceicao", id.MustBirthDate("1990-01-15"))
		require.NoError(t, err)
		assert.Equal(t, p.Key, got.Key)
	})

	t.Run("merged people never match", func(t *testing.T) {
		merged := newPerson(t, "José", "Conceição", "1990-01-15")
		target := newPerson(t, "Outro", "Alvo", "")
		merged.ApplyMergeInto(target, time.Now())
		require.NoError(t, s.Create(ctx, merged))

		got, err := s.FindByNormalizedName(ctx, "jose conceicao", id.BirthDate{})
		require.NoError(t, err)
		assert.Equal(t, p.Key, got.Key)
	})
}

func TestMemoryStoreUpdateReindexes(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	p := newPerson(t, "Maria", "Silva", "")
	require.NoError(t, s.Create(ctx, p))

	name, err := models.NewPersonName("Maria", "", "Santos", "")
	require.NoError(t, err)
	require.NoError(t, p.Rename(name, time.Now()))
	require.NoError(t, s.Update(ctx, p))

	_, err = s.FindByNormalizedName(ctx, "maria silva", id.BirthDate{})
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	got, err := s.FindByNormalizedName(ctx, "maria santos", id.BirthDate{})
	require.NoError(t, err)
	assert.Equal(t, p.Key, got.Key)
}

func TestMemoryStoreCandidates(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	maria := newPerson(t, "Maria", "Silva", "1990-01-15")
	ana := newPerson(t, "Ana", "Silva", "1990-01-17")
	jose := newPerson(t, "José", "Pereira", "1985-06-01")
	for _, p := range []*models.Person{maria, ana, jose} {
		require.NoError(t, s.Create(ctx, p))
	}

	t.Run("name candidates share a token", func(t *testing.T) {
		got, err := s.ListNameCandidates(ctx, "maria silva")
		require.NoError(t, err)
		keys := make(map[id.PersonKey]bool)
		for _, p := range got {
			keys[p.Key] = true
		}
		assert.True(t, keys[maria.Key])
		assert.True(t, keys[ana.Key])
		assert.False(t, keys[jose.Key])
	})

	t.Run("birth date window candidates", func(t *testing.T) {
		got, err := s.ListBirthDateCandidates(ctx, id.MustBirthDate("1990-01-15"), 7)
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("zero birth date yields nothing", func(t *testing.T) {
		got, err := s.ListBirthDateCandidates(ctx, id.BirthDate{}, 7)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	first := newPerson(t, "Maria", "Silva", "")
	second := newPerson(t, "Ana", "Souza", "")
	require.NoError(t, s.Create(ctx, first))
	require.NoError(t, s.Create(ctx, second))

	got, err := s.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Newest first.
	assert.Equal(t, second.Key, got[0].Key)

	page, err := s.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, first.Key, page[0].Key)
}

func TestMemoryStoreFindByIdentifier(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	p := newPerson(t, "Maria", "Silva", "")
	require.NoError(t, p.AddIdentifier(models.ExternalIdentifier{Type: id.IdentifierTypeCPF, Value: "12345678900"}, time.Now()))
	require.NoError(t, s.Create(ctx, p))

	got, err := s.FindByIdentifier(ctx, id.IdentifierTypeCPF, "12345678900")
	require.NoError(t, err)
	assert.Equal(t, p.Key, got.Key)

	// Identifier values are opaque and case/byte sensitive.
	_, err = s.FindByIdentifier(ctx, id.IdentifierTypeCPF, "12345678901")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}
