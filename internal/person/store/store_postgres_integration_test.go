//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"pessoas/internal/person/models"
	"pessoas/internal/person/store"
	id "pessoas/pkg/domain"
	"pessoas/pkg/platform/sentinel"
	"pessoas/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.pg.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateAll(context.Background()))
}

func (s *PostgresStoreSuite) newPerson(first, last, birthDate string) *models.Person {
	s.T().Helper()
	name, err := models.NewPersonName(first, "", last, "")
	s.Require().NoError(err)
	var bd id.BirthDate
	if birthDate != "" {
		bd = id.MustBirthDate(birthDate)
	}
	return models.NewPerson(name, bd, id.Gender{}, time.Now().UTC())
}

func (s *PostgresStoreSuite) TestCreateAndGet() {
	ctx := context.Background()

	p := s.newPerson("Maria", "Silva", "1990-01-15")
	s.Require().NoError(p.AddIdentifier(models.ExternalIdentifier{Type: id.IdentifierTypeCPF, Value: "52998224725"}, time.Now()))
	s.Require().NoError(s.store.Create(ctx, p))

	got, err := s.store.Get(ctx, p.Key)
	s.Require().NoError(err)
	s.Equal(p.Key, got.Key)
	s.Equal("Maria Silva", got.Name.Full())
	s.Equal("1990-01-15", got.BirthDate.String())
	s.Require().Len(got.Identifiers, 1)
	s.Equal("52998224725", got.Identifiers[0].Value)

	_, err = s.store.Get(ctx, id.NewPersonKey())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestIdentifierUniqueness() {
	ctx := context.Background()

	first := s.newPerson("Maria", "Silva", "")
	s.Require().NoError(first.AddIdentifier(models.ExternalIdentifier{Type: id.IdentifierTypeCPF, Value: "52998224725"}, time.Now()))
	s.Require().NoError(s.store.Create(ctx, first))

	second := s.newPerson("Ana", "Souza", "")
	s.Require().NoError(second.AddIdentifier(models.ExternalIdentifier{Type: id.IdentifierTypeCPF, Value: "52998224725"}, time.Now()))
	s.ErrorIs(s.store.Create(ctx, second), sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestUpdateReindexesIdentifiers() {
	ctx := context.Background()

	p := s.newPerson("Maria", "Silva", "")
	s.Require().NoError(p.AddIdentifier(models.ExternalIdentifier{Type: id.IdentifierTypeCPF, Value: "52998224725"}, time.Now()))
	s.Require().NoError(s.store.Create(ctx, p))

	s.Require().NoError(p.RemoveIdentifier(id.IdentifierTypeCPF, "52998224725", time.Now()))
	s.Require().NoError(s.store.Update(ctx, p))

	_, err := s.store.FindByIdentifier(ctx, id.IdentifierTypeCPF, "52998224725")
	s.ErrorIs(err, sentinel.ErrNotFound)

	// The released pair is free for another person.
	other := s.newPerson("Ana", "Souza", "")
	s.Require().NoError(other.AddIdentifier(models.ExternalIdentifier{Type: id.IdentifierTypeCPF, Value: "52998224725"}, time.Now()))
	s.Require().NoError(s.store.Create(ctx, other))
}

func (s *PostgresStoreSuite) TestFindByNormalizedName() {
	ctx := context.Background()

	p := s.newPerson("José", "Conceição", "1985-03-10")
	s.Require().NoError(s.store.Create(ctx, p))

	got, err := s.store.FindByNormalizedName(ctx, "jose conceicao", id.MustBirthDate("1985-03-10"))
	s.Require().NoError(err)
	s.Equal(p.Key, got.Key)

	// Same name, different birth date: no exact hit.
	_, err = s.store.FindByNormalizedName(ctx, "jose conceicao", id.MustBirthDate("1985-03-11"))
	s.ErrorIs(err, sentinel.ErrNotFound)

	// Zero birth date matches on name alone.
	got, err = s.store.FindByNormalizedName(ctx, "jose conceicao", id.BirthDate{})
	s.Require().NoError(err)
	s.Equal(p.Key, got.Key)
}

func (s *PostgresStoreSuite) TestFindByNormalizedNameSkipsMerged() {
	ctx := context.Background()

	source := s.newPerson("José", "Conceição", "")
	target := s.newPerson("José", "Conceição", "")
	s.Require().NoError(s.store.Create(ctx, source))
	s.Require().NoError(s.store.Create(ctx, target))

	source.ApplyMergeInto(target, time.Now().UTC())
	s.Require().NoError(s.store.Update(ctx, source))

	got, err := s.store.FindByNormalizedName(ctx, "jose conceicao", id.BirthDate{})
	s.Require().NoError(err)
	s.Equal(target.Key, got.Key)
}

func (s *PostgresStoreSuite) TestCandidates() {
	ctx := context.Background()

	maria := s.newPerson("Maria", "Silva", "1990-01-15")
	ana := s.newPerson("Ana", "Silva", "1990-01-20")
	jose := s.newPerson("José", "Pereira", "1970-06-01")
	for _, p := range []*models.Person{maria, ana, jose} {
		s.Require().NoError(s.store.Create(ctx, p))
	}

	byName, err := s.store.ListNameCandidates(ctx, "joana silva")
	s.Require().NoError(err)
	s.Len(byName, 2)

	byDate, err := s.store.ListBirthDateCandidates(ctx, id.MustBirthDate("1990-01-17"), 7)
	s.Require().NoError(err)
	s.Len(byDate, 2)

	byDate, err = s.store.ListBirthDateCandidates(ctx, id.BirthDate{}, 7)
	s.Require().NoError(err)
	s.Empty(byDate)
}

func (s *PostgresStoreSuite) TestListNewestFirst() {
	ctx := context.Background()

	older := s.newPerson("Maria", "Silva", "")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := s.newPerson("Ana", "Souza", "")
	s.Require().NoError(s.store.Create(ctx, older))
	s.Require().NoError(s.store.Create(ctx, newer))

	people, err := s.store.List(ctx, 10, 0)
	s.Require().NoError(err)
	s.Require().Len(people, 2)
	s.Equal(newer.Key, people[0].Key)

	people, err = s.store.List(ctx, 1, 1)
	s.Require().NoError(err)
	s.Require().Len(people, 1)
	s.Equal(older.Key, people[0].Key)
}
