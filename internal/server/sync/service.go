package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/iudanet/flashsync/internal/models"
	"github.com/iudanet/flashsync/internal/server/storage"
	"github.com/iudanet/flashsync/pkg/api"
)

// Service runs sync requests against account stores.
//
// One request is one transaction on the account store: resolve the changes
// the client has not seen, allocate the batch's server_seq, apply the batch.
// The store serializes transactions per account, so no other sync of the same
// account can commit between the read and the write.
type Service struct {
	provider storage.AccountProvider
	applier  *Applier
	logger   *slog.Logger
}

// NewService creates a new sync service
func NewService(provider storage.AccountProvider, logger *slog.Logger) *Service {
	return &Service{
		provider: provider,
		applier:  NewApplier(),
		logger:   logger,
	}
}

// Sync exchanges changes with the client of accountID.
// On error nothing from req.Operations has been committed.
func (s *Service) Sync(ctx context.Context, accountID string, req api.SyncRequest) (*api.SyncResponse, error) {
	if req.LastSync < 0 {
		return nil, fmt.Errorf("%w: last_sync %d", ErrInvalidCheckpoint, req.LastSync)
	}

	store, release, err := s.provider.Acquire(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire account store: %w", err)
	}
	defer release()

	var resp *api.SyncResponse
	var seq int64

	err = store.WithTx(ctx, func(tx storage.Tx) error {
		remote, err := Resolve(ctx, tx, req.LastSync)
		if err != nil {
			return err
		}

		seq = NextSeq(remote, req.LastSync)

		local, err := s.applier.Apply(ctx, tx, req.Operations, seq)
		if err != nil {
			return err
		}

		remoteOps, err := toOperations(remote)
		if err != nil {
			return err
		}

		resp = &api.SyncResponse{
			Remote: remoteOps,
			Local:  local,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "Sync applied",
		"account_id", accountID,
		"last_sync", req.LastSync,
		"seq", seq,
		"remote_count", len(resp.Remote),
		"local_count", len(resp.Local))

	return resp, nil
}

// Status returns the highest server_seq stored for the account, 0 when empty
func (s *Service) Status(ctx context.Context, accountID string) (int64, error) {
	store, release, err := s.provider.Acquire(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("failed to acquire account store: %w", err)
	}
	defer release()

	var maxSeq int64
	err = store.WithTx(ctx, func(tx storage.Tx) error {
		var err error
		maxSeq, err = tx.MaxSeq(ctx, 0)
		return err
	})
	if err != nil {
		return 0, err
	}

	return maxSeq, nil
}

func toOperations(changes []models.Change) ([]api.Operation, error) {
	ops := make([]api.Operation, 0, len(changes))
	for _, change := range changes {
		row, err := json.Marshal(change.Record)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s %q: %w", change.Table, change.Record.Key(), err)
		}
		ops = append(ops, api.Operation{Table: string(change.Table), Row: row})
	}
	return ops, nil
}
