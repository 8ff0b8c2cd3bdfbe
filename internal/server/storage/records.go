package storage

import (
	"context"

	"github.com/iudanet/flashsync/internal/models"
)

// Tx is the record store of one account inside a single transaction.
// Reads and writes made through one Tx observe the same snapshot.
type Tx interface {
	// Upsert inserts the record or fully replaces the record with the same identity
	Upsert(ctx context.Context, record models.Record) error

	// QuerySince returns every record of the table with server_seq > seq
	// Order is (server_seq, created_at, identity) but callers must not rely on it
	QuerySince(ctx context.Context, table models.Table, seq int64) ([]models.Record, error)

	// MaxSeq returns the highest server_seq across all tables, or floor if the store is empty
	MaxSeq(ctx context.Context, floor int64) (int64, error)
}

// AccountStore is the isolated record store of one account.
type AccountStore interface {
	// WithTx runs fn inside one transaction. The transaction commits when fn
	// returns nil and rolls back otherwise; nothing fn wrote is visible after a rollback.
	WithTx(ctx context.Context, fn func(tx Tx) error) error
}

// AccountProvider hands out account stores, creating them on first use.
type AccountProvider interface {
	// Acquire returns the store of the account. release must be called exactly
	// once when the caller is done with the store, on every exit path.
	Acquire(ctx context.Context, accountID string) (store AccountStore, release func(), err error)
}
