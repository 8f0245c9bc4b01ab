package service

import (
	"context"
	"sync"
	"time"

	"pessoas/internal/person/store"
	dErrors "pessoas/pkg/domain-errors"
)

// PersonStoreTx provides a transactional boundary for person store mutations.
// Implementations may wrap a database transaction or, in-memory, a coarse lock.
type PersonStoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, s store.Store) error) error
}

// defaultTxTimeout is the maximum duration for a person transaction.
const defaultTxTimeout = 5 * time.Second

// MemoryTx serializes mutations against an in-memory store. The store's own
// locking makes individual operations safe; the outer mutex makes multi-step
// command sequences atomic with respect to each other.
type MemoryTx struct {
	mu      sync.Mutex
	store   store.Store
	timeout time.Duration
}

func NewMemoryTx(s store.Store) *MemoryTx {
	return &MemoryTx{store: s}
}

func (t *MemoryTx) RunInTx(ctx context.Context, fn func(ctx context.Context, s store.Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	return fn(ctx, t.store)
}
