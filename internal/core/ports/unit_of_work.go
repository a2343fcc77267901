package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each operation.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a transaction boundary around job documents.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	Rollback(ctx context.Context) error

	// JobRepository returns a repository bound to the current transaction,
	// or to the plain connection when no transaction is active.
	JobRepository() JobRepository
}
