package database

import "context"

// Transactor runs fn inside a single database transaction. The context passed
// to fn carries the transaction, so repositories called with it join the
// same unit of work. The transaction is rolled back when fn returns an error
// or panics and committed otherwise.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
