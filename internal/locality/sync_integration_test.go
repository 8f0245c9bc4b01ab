//go:build integration

package locality_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"pessoas/internal/locality"
	"pessoas/internal/locality/models"
	"pessoas/internal/locality/store"
	id "pessoas/pkg/domain"
	"pessoas/pkg/testutil/containers"
)

type SyncWorkerSuite struct {
	suite.Suite
	redis   *containers.RedisContainer
	backing *store.MemoryStore
	cache   *store.CachedStore
}

func TestSyncWorkerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(SyncWorkerSuite))
}

func (s *SyncWorkerSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
}

func (s *SyncWorkerSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
	s.backing = store.NewMemory()
	s.cache = store.NewCached(s.backing, s.redis.Client, store.WithCacheTTL(time.Minute))
}

func (s *SyncWorkerSuite) seed(code, name string) *models.Locality {
	locality := &models.Locality{
		ID:   id.LocalityID(uuid.New()),
		Type: id.LocalityTypeCity,
		Code: code,
		Name: name,
	}
	locality.Normalize()
	s.Require().NoError(s.backing.Upsert(context.Background(), locality))
	return locality
}

func (s *SyncWorkerSuite) TestRunOnceWarmsEveryLocality() {
	ctx := context.Background()
	first := s.seed("3550308", "São Paulo")
	second := s.seed("3304557", "Rio de Janeiro")

	worker := locality.NewSyncWorker(s.cache)
	s.Require().NoError(worker.RunOnce(ctx))

	for _, loc := range []*models.Locality{first, second} {
		s.Require().NoError(s.redis.Client.Get(ctx, "loc:"+loc.ID.String()).Err())
		s.Require().NoError(s.redis.Client.Get(ctx, "loc:code:"+loc.Code).Err())
	}
}

func (s *SyncWorkerSuite) TestRunOnceRefreshesStaleEntries() {
	ctx := context.Background()
	city := s.seed("3550308", "São Paulo")

	worker := locality.NewSyncWorker(s.cache)
	s.Require().NoError(worker.RunOnce(ctx))

	// Backing store changes out of band; next refresh rewrites the cache.
	city.Name = "São Paulo Capital"
	city.Normalize()
	s.Require().NoError(s.backing.Upsert(ctx, city))
	s.Require().NoError(worker.RunOnce(ctx))

	got, err := s.cache.Get(ctx, city.ID)
	s.Require().NoError(err)
	s.Equal("São Paulo Capital", got.Name)
}

func (s *SyncWorkerSuite) TestStartStopsOnContextCancel() {
	ctx, cancel := context.WithCancel(context.Background())
	worker := locality.NewSyncWorker(s.cache, locality.WithSyncInterval(10*time.Millisecond))

	done := make(chan error, 1)
	go func() { done <- worker.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		s.ErrorIs(err, context.Canceled)
	case <-time.After(2 * time.Second):
		s.Fail("worker did not stop after cancel")
	}
}
