package sync

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/iudanet/flashsync/internal/models"
	"github.com/iudanet/flashsync/internal/server/storage"
)

// Resolve returns every record the store has with server_seq > checkpoint,
// across all tables, ordered by CompareChanges.
// An empty result means the client is already current.
func Resolve(ctx context.Context, tx storage.Tx, checkpoint int64) ([]models.Change, error) {
	changes := make([]models.Change, 0)

	for _, table := range models.Tables {
		records, err := tx.QuerySince(ctx, table, checkpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to query %s: %w", table, err)
		}

		for _, record := range records {
			changes = append(changes, models.Change{Table: table, Record: record})
		}
	}

	SortChanges(changes)

	return changes, nil
}

// SortChanges orders changes by CompareChanges
func SortChanges(changes []models.Change) {
	slices.SortFunc(changes, CompareChanges)
}

// CompareChanges is the replay order of changes: server_seq ascending, then
// created_at ascending. Records of one batch share a server_seq and are ordered
// by creation time; table and identity only break exact ties so that the
// order is total.
func CompareChanges(a, b models.Change) int {
	if c := cmp.Compare(a.Record.Seq(), b.Record.Seq()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Record.Created(), b.Record.Created()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Table.Rank(), b.Table.Rank()); c != 0 {
		return c
	}
	return strings.Compare(a.Record.Key(), b.Record.Key())
}
