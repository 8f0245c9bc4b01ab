package main

import (
	"context"
	"database/sql"
	"time"

	personservice "pessoas/internal/person/service"
	personstore "pessoas/internal/person/store"
	dErrors "pessoas/pkg/domain-errors"
)

const defaultPersonTxTimeout = 5 * time.Second

// personPostgresTx adapts *sql.DB transactions to the person service's
// transactional boundary.
type personPostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

func newPersonPostgresTx(db *sql.DB) *personPostgresTx {
	return &personPostgresTx{db: db}
}

func (t *personPostgresTx) RunInTx(ctx context.Context, fn func(ctx context.Context, s personstore.Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultPersonTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(ctx, personstore.NewPostgresTx(tx)); err != nil {
		return err
	}
	return tx.Commit()
}

var _ personservice.PersonStoreTx = (*personPostgresTx)(nil)
