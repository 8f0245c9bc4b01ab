package locality

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pessoas/internal/locality/store"
)

// DefaultSyncInterval spaces out full cache refreshes.
const DefaultSyncInterval = time.Hour

// SyncWorker periodically rewrites every locality into the Redis cache so
// lookups stay warm even after entries expire.
type SyncWorker struct {
	cache    *store.CachedStore
	interval time.Duration
	logger   *slog.Logger
}

type SyncOption func(w *SyncWorker)

func WithSyncInterval(interval time.Duration) SyncOption {
	return func(w *SyncWorker) {
		if interval > 0 {
			w.interval = interval
		}
	}
}

func WithSyncLogger(logger *slog.Logger) SyncOption {
	return func(w *SyncWorker) {
		w.logger = logger
	}
}

// NewSyncWorker constructs a SyncWorker over the cached store.
func NewSyncWorker(cache *store.CachedStore, opts ...SyncOption) *SyncWorker {
	w := &SyncWorker{
		cache:    cache,
		interval: DefaultSyncInterval,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start runs an immediate refresh and then one per interval until ctx is
// cancelled. Refresh failures are logged and retried on the next tick.
func (w *SyncWorker) Start(ctx context.Context) error {
	if err := w.RunOnce(ctx); err != nil {
		w.logger.WarnContext(ctx, "locality cache refresh failed", "error", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.RunOnce(ctx); err != nil {
				w.logger.WarnContext(ctx, "locality cache refresh failed", "error", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// RunOnce loads every locality from the backing store and warms the cache.
func (w *SyncWorker) RunOnce(ctx context.Context) error {
	started := time.Now()
	localities, err := w.cache.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list localities: %w", err)
	}
	var failed int
	for _, locality := range localities {
		if err := w.cache.Warm(ctx, locality); err != nil {
			failed++
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("warm localities: %d of %d writes failed", failed, len(localities))
	}
	w.logger.InfoContext(ctx, "locality cache refreshed",
		slog.Int("localities", len(localities)),
		slog.Duration("took", time.Since(started)),
	)
	return nil
}
