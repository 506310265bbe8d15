package pgsql

import (
	"context"

	portsrepo "github.com/SscSPs/purchase_settlement_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTxManager struct {
	BaseRepository
}

func newPgxTxManager(pool *pgxpool.Pool) portsrepo.TransactionManager {
	return &PgxTxManager{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionManager = (*PgxTxManager)(nil)

// WithinTx runs fn in a transaction carried by the context passed to it.
// A context that already carries one is reused as is.
func (m *PgxTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = m.Rollback(ctx, tx) }() // no-op once committed

	if err := fn(withTx(ctx, tx)); err != nil {
		return err
	}
	return m.Commit(ctx, tx)
}
