package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"pessoas/internal/locality/models"
	id "pessoas/pkg/domain"
)

// Cache key prefixes. Entries are JSON blobs.
const (
	cacheKeyPrefix     = "loc:"
	cacheCodeKeyPrefix = "loc:code:"
)

// DefaultCacheTTL bounds staleness when the sync worker is not running.
const DefaultCacheTTL = 12 * time.Hour

// CachedStore is a read-through Redis cache in front of another locality
// store. Single-record lookups are cached; list queries always hit the
// backing store. Cache failures degrade to the backing store.
type CachedStore struct {
	store  Store
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

type CachedStoreOption func(c *CachedStore)

func WithCacheTTL(ttl time.Duration) CachedStoreOption {
	return func(c *CachedStore) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithCacheLogger(logger *slog.Logger) CachedStoreOption {
	return func(c *CachedStore) {
		c.logger = logger
	}
}

// NewCached wraps a store with a Redis read-through cache.
func NewCached(st Store, client *redis.Client, opts ...CachedStoreOption) *CachedStore {
	c := &CachedStore{
		store:  st,
		client: client,
		ttl:    DefaultCacheTTL,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CachedStore) Upsert(ctx context.Context, locality *models.Locality) error {
	if err := c.store.Upsert(ctx, locality); err != nil {
		return err
	}
	c.put(ctx, locality)
	return nil
}

func (c *CachedStore) Get(ctx context.Context, localityID id.LocalityID) (*models.Locality, error) {
	if locality := c.lookup(ctx, cacheKeyPrefix+localityID.String()); locality != nil {
		return locality, nil
	}
	locality, err := c.store.Get(ctx, localityID)
	if err != nil {
		return nil, err
	}
	c.put(ctx, locality)
	return locality, nil
}

func (c *CachedStore) GetByCode(ctx context.Context, code string) (*models.Locality, error) {
	if locality := c.lookup(ctx, cacheCodeKeyPrefix+code); locality != nil {
		return locality, nil
	}
	locality, err := c.store.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	c.put(ctx, locality)
	return locality, nil
}

func (c *CachedStore) ListByType(ctx context.Context, localityType id.LocalityType) ([]*models.Locality, error) {
	return c.store.ListByType(ctx, localityType)
}

func (c *CachedStore) Search(ctx context.Context, namePrefix string, limit int) ([]*models.Locality, error) {
	return c.store.Search(ctx, namePrefix, limit)
}

func (c *CachedStore) ListAll(ctx context.Context) ([]*models.Locality, error) {
	return c.store.ListAll(ctx)
}

// Warm writes a locality into the cache without touching the backing store.
// The sync worker uses it to refresh entries in bulk.
func (c *CachedStore) Warm(ctx context.Context, locality *models.Locality) error {
	blob, err := json.Marshal(locality)
	if err != nil {
		return err
	}
	pipe := c.client.Pipeline()
	pipe.Set(ctx, cacheKeyPrefix+locality.ID.String(), blob, c.ttl)
	pipe.Set(ctx, cacheCodeKeyPrefix+locality.Code, blob, c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *CachedStore) lookup(ctx context.Context, key string) *models.Locality {
	blob, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		c.logger.WarnContext(ctx, "locality cache read failed", "key", key, "error", err)
		return nil
	}
	var locality models.Locality
	if err := json.Unmarshal(blob, &locality); err != nil {
		c.logger.WarnContext(ctx, "locality cache entry corrupt", "key", key, "error", err)
		return nil
	}
	return &locality
}

func (c *CachedStore) put(ctx context.Context, locality *models.Locality) {
	if err := c.Warm(ctx, locality); err != nil {
		c.logger.WarnContext(ctx, "locality cache write failed",
			"locality_id", locality.ID.String(), "error", err)
	}
}
