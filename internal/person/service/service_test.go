package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pessoas/internal/audit"
	"pessoas/internal/dedup"
	"pessoas/internal/person/models"
	"pessoas/internal/person/store"
	id "pessoas/pkg/domain"
	dErrors "pessoas/pkg/domain-errors"
	"pessoas/pkg/platform/sentinel"
)

type fixture struct {
	svc  *Service
	mem  *store.MemoryStore
	sink *audit.MemorySink
	pub  *audit.Publisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := store.NewMemory()
	sink := audit.NewMemorySink()
	pub := audit.NewPublisher(sink)
	t.Cleanup(pub.Close)

	svc := New(mem, NewMemoryTx(mem), dedup.New(mem), WithAuditPublisher(pub))
	return &fixture{svc: svc, mem: mem, sink: sink, pub: pub}
}

func (f *fixture) create(t *testing.T, req models.CreatePersonRequest) *models.Person {
	t.Helper()
	p, err := f.svc.Create(context.Background(), &req)
	require.NoError(t, err)
	return p
}

func (f *fixture) trail(key id.PersonKey) []audit.Event {
	f.pub.Close()
	return f.sink.ListByPerson(key)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an active person", func(t *testing.T) {
		f := newFixture(t)
		p := f.create(t, models.CreatePersonRequest{
			FirstName: "Maria", LastName: "Silva", BirthDate: "1990-01-15", Gender: "female",
		})

		assert.False(t, p.Key.IsNil())
		assert.Equal(t, id.PersonStatusActive, p.Status)
		assert.Equal(t, "Maria Silva", p.Name.Full())
		assert.Equal(t, id.GenderFemale, p.Gender)

		stored, err := f.mem.Get(ctx, p.Key)
		require.NoError(t, err)
		assert.Equal(t, p.Key, stored.Key)

		trail := f.trail(p.Key)
		require.Len(t, trail, 1)
		assert.Equal(t, audit.ActionPersonCreated, trail[0].Action)
	})

	t.Run("missing last name", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Create(ctx, &models.CreatePersonRequest{FirstName: "Maria"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("exact duplicate blocks even with allow_similar", func(t *testing.T) {
		f := newFixture(t)
		f.create(t, models.CreatePersonRequest{FirstName: "Maria", LastName: "Silva", BirthDate: "1990-01-15"})

		_, err := f.svc.Create(ctx, &models.CreatePersonRequest{
			FirstName: "MARIA", LastName: "Silva", BirthDate: "1990-01-15", AllowSimilar: true,
		})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeDuplicatePerson))
	})

	t.Run("similar duplicate blocks by default and passes with allow_similar", func(t *testing.T) {
		f := newFixture(t)
		existing := f.create(t, models.CreatePersonRequest{FirstName: "Maria", LastName: "Silva", BirthDate: "1990-01-15"})

		_, err := f.svc.Create(ctx, &models.CreatePersonRequest{
			FirstName: "Maria", LastName: "Silvia", BirthDate: "1990-01-15",
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeDuplicatePerson))
		// The rejection names the candidate so reviewers can look it up.
		assert.Contains(t, err.Error(), existing.Key.String())

		p, err := f.svc.Create(ctx, &models.CreatePersonRequest{
			FirstName: "Maria", LastName: "Silvia", BirthDate: "1990-01-15", AllowSimilar: true,
		})
		require.NoError(t, err)
		assert.NotEqual(t, existing.Key, p.Key)
	})
}

func TestRename(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.create(t, models.CreatePersonRequest{FirstName: "Maria", LastName: "Silva"})

	renamed, err := f.svc.Rename(ctx, p.Key, &models.RenamePersonRequest{FirstName: "Maria", LastName: "Santos"})
	require.NoError(t, err)
	assert.Equal(t, "Maria Santos", renamed.Name.Full())

	stored, err := f.mem.Get(ctx, p.Key)
	require.NoError(t, err)
	assert.Equal(t, "Maria Santos", stored.Name.Full())

	_, err = f.svc.Rename(ctx, id.NewPersonKey(), &models.RenamePersonRequest{FirstName: "A", LastName: "B"})
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.create(t, models.CreatePersonRequest{FirstName: "Maria", LastName: "Silva"})

	deactivated, err := f.svc.Deactivate(ctx, p.Key, "left the municipality")
	require.NoError(t, err)
	assert.Equal(t, id.PersonStatusInactive, deactivated.Status)

	_, err = f.svc.Deactivate(ctx, p.Key, "")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))

	reactivated, err := f.svc.Reactivate(ctx, p.Key, "returned")
	require.NoError(t, err)
	assert.Equal(t, id.PersonStatusActive, reactivated.Status)

	_, err = f.svc.Reactivate(ctx, p.Key, "")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))

	trail := f.trail(p.Key)
	require.Len(t, trail, 3)
	assert.Equal(t, audit.ActionPersonDeactivated, trail[1].Action)
	assert.Equal(t, "left the municipality", trail[1].Reason)
	assert.Equal(t, audit.ActionPersonReactivated, trail[2].Action)
}

func TestMerge(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	source := f.create(t, models.CreatePersonRequest{FirstName: "Maria", LastName: "Silva", BirthDate: "1990-01-15"})
	target := f.create(t, models.CreatePersonRequest{FirstName: "Ana", LastName: "Souza"})

	_, err := f.svc.AddIdentifier(ctx, source.Key, &models.AddIdentifierRequest{Type: "cpf", Value: "52998224725"})
	require.NoError(t, err)

	merged, err := f.svc.Merge(ctx, source.Key, &models.MergePersonRequest{TargetKey: target.Key.String(), Reason: "same citizen"})
	require.NoError(t, err)
	assert.Equal(t, id.PersonStatusMerged, merged.Status)
	assert.Equal(t, target.Key, merged.MergedInto)
	assert.Empty(t, merged.Identifiers)

	// The identifier now resolves to the target.
	byIdent, err := f.mem.FindByIdentifier(ctx, id.IdentifierTypeCPF, "52998224725")
	require.NoError(t, err)
	assert.Equal(t, target.Key, byIdent.Key)

	t.Run("merged source cannot merge again", func(t *testing.T) {
		_, err := f.svc.Merge(ctx, source.Key, &models.MergePersonRequest{TargetKey: target.Key.String()})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
	})

	t.Run("self merge rejected", func(t *testing.T) {
		_, err := f.svc.Merge(ctx, target.Key, &models.MergePersonRequest{TargetKey: target.Key.String()})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("inactive target rejected", func(t *testing.T) {
		third := f.create(t, models.CreatePersonRequest{FirstName: "José", LastName: "Pereira"})
		_, err := f.svc.Deactivate(ctx, target.Key, "")
		require.NoError(t, err)
		_, err = f.svc.Merge(ctx, third.Key, &models.MergePersonRequest{TargetKey: target.Key.String()})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
	})
}

func TestAddIdentifier(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.create(t, models.CreatePersonRequest{FirstName: "Maria", LastName: "Silva"})

	t.Run("valid cpf", func(t *testing.T) {
		updated, err := f.svc.AddIdentifier(ctx, p.Key, &models.AddIdentifierRequest{Type: "cpf", Value: "52998224725"})
		require.NoError(t, err)
		require.Len(t, updated.Identifiers, 1)
	})

	t.Run("cpf checksum failure", func(t *testing.T) {
		_, err := f.svc.AddIdentifier(ctx, p.Key, &models.AddIdentifierRequest{Type: "cpf", Value: "52998224720"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidDocument))
	})

	t.Run("cnpj checksum", func(t *testing.T) {
		_, err := f.svc.AddIdentifier(ctx, p.Key, &models.AddIdentifierRequest{Type: "cnpj", Value: "11222333000181"})
		require.NoError(t, err)
		_, err = f.svc.AddIdentifier(ctx, p.Key, &models.AddIdentifierRequest{Type: "cnpj", Value: "11222333000180"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidDocument))
	})

	t.Run("duplicate pair on same person conflicts", func(t *testing.T) {
		_, err := f.svc.AddIdentifier(ctx, p.Key, &models.AddIdentifierRequest{Type: "cpf", Value: "52998224725"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("pair held by another person conflicts", func(t *testing.T) {
		other := f.create(t, models.CreatePersonRequest{FirstName: "Ana", LastName: "Souza"})
		_, err := f.svc.AddIdentifier(ctx, other.Key, &models.AddIdentifierRequest{Type: "cpf", Value: "52998224725"})
		assert.ErrorIs(t, err, sentinel.ErrConflict)
	})

	t.Run("opaque types skip document validation", func(t *testing.T) {
		updated, err := f.svc.AddIdentifier(ctx, p.Key, &models.AddIdentifierRequest{Type: "legacy_system", Value: "L-0042"})
		require.NoError(t, err)
		assert.Len(t, updated.Identifiers, 3)
	})
}

func TestRemoveIdentifier(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.create(t, models.CreatePersonRequest{FirstName: "Maria", LastName: "Silva"})
	_, err := f.svc.AddIdentifier(ctx, p.Key, &models.AddIdentifierRequest{Type: "cpf", Value: "52998224725"})
	require.NoError(t, err)

	updated, err := f.svc.RemoveIdentifier(ctx, p.Key, id.IdentifierTypeCPF, "52998224725")
	require.NoError(t, err)
	assert.Empty(t, updated.Identifiers)

	_, err = f.svc.RemoveIdentifier(ctx, p.Key, id.IdentifierTypeCPF, "52998224725")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	// The store index is released for reuse.
	_, err = f.mem.FindByIdentifier(ctx, id.IdentifierTypeCPF, "52998224725")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestGetAndList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Get(ctx, id.PersonKey{})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	first := f.create(t, models.CreatePersonRequest{FirstName: "Maria", LastName: "Silva"})
	second := f.create(t, models.CreatePersonRequest{FirstName: "Ana", LastName: "Souza"})

	got, err := f.svc.Get(ctx, first.Key)
	require.NoError(t, err)
	assert.Equal(t, first.Key, got.Key)

	page, err := f.svc.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, second.Key, page[0].Key)
}
