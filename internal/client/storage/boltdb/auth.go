package boltdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/flashsync/internal/client/storage"
)

// Сессия одна на базу, поэтому хранится под фиксированным ключом
var sessionKey = []byte("current")

// SaveAuth replaces the stored session
func (s *Storage) SaveAuth(ctx context.Context, session *storage.AuthData) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	return s.update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketAuth).Put(sessionKey, raw)
	})
}

// GetAuth returns the stored session or storage.ErrAuthNotFound
func (s *Storage) GetAuth(ctx context.Context) (*storage.AuthData, error) {
	session := new(storage.AuthData)

	err := s.view(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketAuth).Get(sessionKey)
		if raw == nil {
			return storage.ErrAuthNotFound
		}
		// raw валиден только внутри транзакции, Unmarshal копирует данные
		return json.Unmarshal(raw, session)
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

func (s *Storage) DeleteAuth(ctx context.Context) error {
	return s.update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketAuth)
		if b.Get(sessionKey) == nil {
			return storage.ErrAuthNotFound
		}
		return b.Delete(sessionKey)
	})
}

// IsAuthenticated reports whether a session with an unexpired token is stored.
// A signed out session keeps only the username and is not authenticated.
func (s *Storage) IsAuthenticated(ctx context.Context) (bool, error) {
	session, err := s.GetAuth(ctx)
	switch {
	case errors.Is(err, storage.ErrAuthNotFound):
		return false, nil
	case err != nil:
		return false, err
	}

	return session.Active(s.now()), nil
}
