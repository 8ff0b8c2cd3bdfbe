package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"
)

var keyLastSync = []byte("last_sync")

// LastSync retrieves the checkpoint of the last successful sync
// Returns 0 if no sync has been performed yet
func (s *Storage) LastSync(ctx context.Context) (int64, error) {
	var lastSync int64

	err := s.view(func(tx *bbolt.Tx) error {
		lastSync = getLastSync(tx)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get last sync: %w", err)
	}

	return lastSync, nil
}

func getLastSync(tx *bbolt.Tx) int64 {
	raw := tx.Bucket(bucketMetadata).Get(keyLastSync)
	if len(raw) != 8 {
		// Первая синхронизация
		return 0
	}
	return int64(binary.BigEndian.Uint64(raw))
}

func putLastSync(tx *bbolt.Tx, lastSync int64) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(lastSync))

	if err := tx.Bucket(bucketMetadata).Put(keyLastSync, buf); err != nil {
		return fmt.Errorf("failed to save last sync: %w", err)
	}
	return nil
}
