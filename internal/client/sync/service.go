package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	gosync "sync"

	"github.com/iudanet/flashsync/internal/client/api"
	"github.com/iudanet/flashsync/internal/client/auth"
	"github.com/iudanet/flashsync/internal/client/storage"
	pkgapi "github.com/iudanet/flashsync/pkg/api"
)

// Result describes one completed sync
type Result struct {
	Pushed   int   // отправлено локальных строк
	Pulled   int   // получено чужих строк
	LastSync int64 // checkpoint после синхронизации
}

// Service synchronizes the local store with the server.
// Calls to Sync never overlap.
type Service struct {
	api      api.ClientAPI
	records  storage.RecordStorage
	sessions storage.AuthStorage
	logger   *slog.Logger
	mu       gosync.Mutex
}

// NewService creates a new sync service
func NewService(apiClient api.ClientAPI, records storage.RecordStorage, sessions storage.AuthStorage, logger *slog.Logger) *Service {
	return &Service{
		api:      apiClient,
		records:  records,
		sessions: sessions,
		logger:   logger,
	}
}

// Sync pushes unsynced rows with the current checkpoint, then stores the
// server's remote rows followed by the stamped local rows and advances
// the checkpoint, all in one local transaction.
func (s *Service) Sync(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	lastSync, err := s.records.LastSync(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get last sync: %w", err)
	}

	ops, err := s.records.Unsynced(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get local changes: %w", err)
	}

	s.logger.Debug("Starting synchronization", "last_sync", lastSync, "operations", len(ops))

	resp, err := s.api.Sync(ctx, token, pkgapi.SyncRequest{
		Operations: ops,
		LastSync:   lastSync,
	})
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return nil, fmt.Errorf("%w: session expired, sign in again", auth.ErrNotSignedIn)
		}
		return nil, err
	}

	remote, err := sortOperations(resp.Remote)
	if err != nil {
		return nil, fmt.Errorf("invalid remote operation: %w", err)
	}
	local, err := sortOperations(resp.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid local operation: %w", err)
	}

	next := nextCheckpoint(lastSync, remote, local)

	// Локальные строки идут последними, чтобы перезаписать чужие версии
	all := make([]pkgapi.Operation, 0, len(remote)+len(local))
	all = append(all, operations(remote)...)
	all = append(all, operations(local)...)

	if err := s.records.ApplySync(ctx, all, next); err != nil {
		return nil, fmt.Errorf("failed to apply sync response: %w", err)
	}

	s.logger.Info("Synchronization completed",
		"pushed", len(local),
		"remote_count", len(remote),
		"last_sync", next)

	return &Result{
		Pushed:   len(local),
		Pulled:   len(remote),
		LastSync: next,
	}, nil
}

// Pending returns the number of rows not yet accepted by the server
func (s *Service) Pending(ctx context.Context) (int, error) {
	ops, err := s.records.Unsynced(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get local changes: %w", err)
	}
	return len(ops), nil
}

// ServerSeq returns the server's max_seq for the signed in account
func (s *Service) ServerSeq(ctx context.Context) (int64, error) {
	token, err := s.accessToken(ctx)
	if err != nil {
		return 0, err
	}

	resp, err := s.api.SyncStatus(ctx, token)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return 0, fmt.Errorf("%w: session expired, sign in again", auth.ErrNotSignedIn)
		}
		return 0, err
	}
	return resp.MaxSeq, nil
}

func (s *Service) accessToken(ctx context.Context) (string, error) {
	ok, err := s.sessions.IsAuthenticated(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to check session: %w", err)
	}
	if !ok {
		return "", auth.ErrNotSignedIn
	}

	session, err := s.sessions.GetAuth(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get session: %w", err)
	}
	return session.AccessToken, nil
}

type sortedOperation struct {
	op   pkgapi.Operation
	meta pkgapi.RowMeta
}

// sortOperations orders ops by (server_seq, created_at), keeping the
// server's order for ties
func sortOperations(ops []pkgapi.Operation) ([]sortedOperation, error) {
	sorted := make([]sortedOperation, 0, len(ops))
	for i, op := range ops {
		meta, err := op.Meta()
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		sorted = append(sorted, sortedOperation{op: op, meta: meta})
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].meta, sorted[j].meta
		if a.ServerSeq != b.ServerSeq {
			return a.ServerSeq < b.ServerSeq
		}
		return a.CreatedAt < b.CreatedAt
	})

	return sorted, nil
}

// nextCheckpoint returns the seq shared by all local rows if any were
// pushed, otherwise the seq of the last remote row, otherwise lastSync
func nextCheckpoint(lastSync int64, remote, local []sortedOperation) int64 {
	if len(local) > 0 {
		return local[len(local)-1].meta.ServerSeq
	}
	if len(remote) > 0 {
		return remote[len(remote)-1].meta.ServerSeq
	}
	return lastSync
}

func operations(sorted []sortedOperation) []pkgapi.Operation {
	ops := make([]pkgapi.Operation, 0, len(sorted))
	for _, s := range sorted {
		ops = append(ops, s.op)
	}
	return ops
}
