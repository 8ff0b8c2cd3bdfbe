package sync

import (
	"context"
	"io"
	"log/slog"

	"github.com/iudanet/flashsync/internal/models"
	"github.com/iudanet/flashsync/internal/server/storage"
)

// memTx is an in-memory storage.Tx for unit tests
type memTx struct {
	upsertErr error
	records   map[models.Table]map[string]models.Record
	upserts   int
}

var _ storage.Tx = (*memTx)(nil)

func newMemTx(records ...models.Record) *memTx {
	tx := &memTx{records: make(map[models.Table]map[string]models.Record)}
	for _, r := range records {
		tx.put(r)
	}
	return tx
}

func (m *memTx) put(r models.Record) {
	if m.records[r.Table()] == nil {
		m.records[r.Table()] = make(map[string]models.Record)
	}
	m.records[r.Table()][r.Key()] = r
}

func (m *memTx) Upsert(_ context.Context, r models.Record) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts++
	m.put(r)
	return nil
}

func (m *memTx) QuerySince(_ context.Context, table models.Table, seq int64) ([]models.Record, error) {
	var out []models.Record
	for _, r := range m.records[table] {
		if r.Seq() > seq {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memTx) MaxSeq(_ context.Context, floor int64) (int64, error) {
	found := false
	var maxSeq int64
	for _, byKey := range m.records {
		for _, r := range byKey {
			if !found || r.Seq() > maxSeq {
				maxSeq = r.Seq()
				found = true
			}
		}
	}
	if !found {
		return floor, nil
	}
	return maxSeq, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
