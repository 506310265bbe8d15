package repositories

import (
	"context"
)

// TransactionManager runs a unit of work inside one database transaction.
type TransactionManager interface {
	// WithinTx calls fn with a context carrying the transaction. The transaction
	// commits when fn returns nil and rolls back otherwise. Nested calls join the
	// outer transaction.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
