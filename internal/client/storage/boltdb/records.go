package boltdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/iudanet/flashsync/internal/client/storage"
	"github.com/iudanet/flashsync/internal/models"
	"github.com/iudanet/flashsync/pkg/api"
)

// PutLocal stores a row changed on this client with server_seq reset to 0
func (s *Storage) PutLocal(ctx context.Context, rec models.Record) error {
	if !rec.Table().Valid() {
		return fmt.Errorf("%w: %q", storage.ErrUnknownTable, rec.Table())
	}
	if rec.Key() == "" {
		return fmt.Errorf("%w: empty key in %s", storage.ErrInvalidRow, rec.Table())
	}

	rec.SetSeq(0)
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal %s row: %w", rec.Table(), err)
	}

	return s.update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(tableBucket(rec.Table())).Put([]byte(rec.Key()), data); err != nil {
			return fmt.Errorf("failed to save %s row: %w", rec.Table(), err)
		}
		return nil
	})
}

// GetRecord returns a stored row by table and key
func (s *Storage) GetRecord(ctx context.Context, table models.Table, key string) (models.Record, error) {
	if !table.Valid() {
		return nil, fmt.Errorf("%w: %q", storage.ErrUnknownTable, table)
	}

	var rec models.Record
	err := s.view(func(tx *bbolt.Tx) error {
		data := tx.Bucket(tableBucket(table)).Get([]byte(key))
		if data == nil {
			return storage.ErrRecordNotFound
		}

		var err error
		rec, err = decodeRow(table, data)
		return err
	})
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// ListRecords returns all rows of a table ordered by created_at, then key
func (s *Storage) ListRecords(ctx context.Context, table models.Table) ([]models.Record, error) {
	if !table.Valid() {
		return nil, fmt.Errorf("%w: %q", storage.ErrUnknownTable, table)
	}

	var records []models.Record
	err := s.view(func(tx *bbolt.Tx) error {
		return tx.Bucket(tableBucket(table)).ForEach(func(k, v []byte) error {
			rec, err := decodeRow(table, v)
			if err != nil {
				return err
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Created() != records[j].Created() {
			return records[i].Created() < records[j].Created()
		}
		return records[i].Key() < records[j].Key()
	})

	return records, nil
}

// Unsynced returns rows with server_seq 0, table by table in models.Tables
// order and by created_at within a table
func (s *Storage) Unsynced(ctx context.Context) ([]api.Operation, error) {
	ops := []api.Operation{}

	err := s.view(func(tx *bbolt.Tx) error {
		for _, table := range models.Tables {
			type pending struct {
				op      api.Operation
				created float64
			}
			var rows []pending

			err := tx.Bucket(tableBucket(table)).ForEach(func(k, v []byte) error {
				op := api.Operation{Table: string(table), Row: json.RawMessage(bytes.Clone(v))}
				meta, err := op.Meta()
				if err != nil {
					return fmt.Errorf("failed to decode %s row %q: %w", table, k, err)
				}
				if meta.ServerSeq == 0 {
					rows = append(rows, pending{op: op, created: meta.CreatedAt})
				}
				return nil
			})
			if err != nil {
				return err
			}

			sort.SliceStable(rows, func(i, j int) bool { return rows[i].created < rows[j].created })
			for _, r := range rows {
				ops = append(ops, r.op)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect unsynced rows: %w", err)
	}

	return ops, nil
}

// ApplySync writes ops in order, later ops overwrite earlier ones with the
// same key, and stores lastSync. Nothing is written if any op is rejected.
func (s *Storage) ApplySync(ctx context.Context, ops []api.Operation, lastSync int64) error {
	return s.update(func(tx *bbolt.Tx) error {
		for i, op := range ops {
			table := models.Table(op.Table)
			if !table.Valid() {
				return fmt.Errorf("operation %d: %w: %q", i, storage.ErrUnknownTable, op.Table)
			}

			rec, err := decodeRow(table, op.Row)
			if err != nil {
				return fmt.Errorf("operation %d: %w", i, err)
			}
			if rec.Key() == "" {
				return fmt.Errorf("operation %d: %w: empty key in %s", i, storage.ErrInvalidRow, table)
			}

			if err := tx.Bucket(tableBucket(table)).Put([]byte(rec.Key()), bytes.Clone(op.Row)); err != nil {
				return fmt.Errorf("operation %d: failed to save row: %w", i, err)
			}
		}

		return putLastSync(tx, lastSync)
	})
}

// Reset removes all rows and the sync checkpoint
func (s *Storage) Reset(ctx context.Context) error {
	return s.update(func(tx *bbolt.Tx) error {
		for _, table := range models.Tables {
			name := tableBucket(table)
			if err := tx.DeleteBucket(name); err != nil {
				return fmt.Errorf("failed to drop %s bucket: %w", name, err)
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return tx.Bucket(bucketMetadata).Delete(keyLastSync)
	})
}

func decodeRow(table models.Table, data []byte) (models.Record, error) {
	rec, ok := models.NewRecord(table)
	if !ok {
		return nil, fmt.Errorf("%w: %q", storage.ErrUnknownTable, table)
	}
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", storage.ErrInvalidRow, table, err)
	}
	return rec, nil
}
