package storage

import (
	"context"

	"github.com/iudanet/flashsync/internal/models"
	"github.com/iudanet/flashsync/pkg/api"
)

//go:generate moq -out recordstorage_mock.go . RecordStorage

// RecordStorage keeps the local copy of decks, cards and reviews.
// A row whose server_seq is 0 has local changes the server has not seen yet.
type RecordStorage interface {
	// PutLocal stores a row changed on this client and marks it unsynced
	PutLocal(ctx context.Context, rec models.Record) error

	// GetRecord returns a stored row by table and key
	// Returns ErrRecordNotFound if the row doesn't exist
	GetRecord(ctx context.Context, table models.Table, key string) (models.Record, error)

	// ListRecords returns all rows of a table ordered by created_at
	ListRecords(ctx context.Context, table models.Table) ([]models.Record, error)

	// Unsynced returns every unsynced row as it is stored, decks first
	Unsynced(ctx context.Context) ([]api.Operation, error)

	// ApplySync writes ops in the given order and advances last_sync
	// in a single transaction. Rows are stored as received.
	ApplySync(ctx context.Context, ops []api.Operation, lastSync int64) error

	// LastSync returns the checkpoint of the last successful sync, 0 if none
	LastSync(ctx context.Context) (int64, error)

	// Reset removes all rows and the checkpoint
	Reset(ctx context.Context) error
}
