// Package seed fills an account with demo decks.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/flashsync/internal/models"
	"github.com/iudanet/flashsync/internal/server/storage"
	"github.com/iudanet/flashsync/pkg/api"
)

// Syncer runs sync requests for an account
type Syncer interface {
	Sync(ctx context.Context, accountID string, req api.SyncRequest) (*api.SyncResponse, error)
	Status(ctx context.Context, accountID string) (int64, error)
}

// PasswordHasher hashes account passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// demoDecks: имя колоды и число карточек в ней
var demoDecks = []struct {
	name  string
	cards int
}{
	{name: "Deck 0", cards: 10},
	{name: "Deck 1", cards: 3},
}

// DemoOperations returns the operations creating the demo decks and cards.
// Every record gets a fresh identity, so seeding twice adds a second copy.
func DemoOperations(now time.Time) ([]api.Operation, error) {
	created := float64(now.UnixNano()) / float64(time.Second)

	var ops []api.Operation
	for _, d := range demoDecks {
		deck := &models.Deck{
			DeckID:    uuid.NewString(),
			DeckName:  d.name,
			CreatedAt: created,
		}
		op, err := operation(deck)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)

		for j := 1; j <= d.cards; j++ {
			card := &models.Card{
				CardID:    uuid.NewString(),
				DeckID:    deck.DeckID,
				Front:     fmt.Sprintf("Front %d", j),
				Back:      fmt.Sprintf("Back %d", j),
				CreatedAt: created,
			}
			op, err := operation(card)
			if err != nil {
				return nil, err
			}
			ops = append(ops, op)
		}
	}

	return ops, nil
}

// Seed writes the demo decks into the account through the regular sync path,
// so they get a server_seq like any client batch.
func Seed(ctx context.Context, syncer Syncer, accountID string, now time.Time) (*api.SyncResponse, error) {
	ops, err := DemoOperations(now)
	if err != nil {
		return nil, err
	}

	maxSeq, err := syncer.Status(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to read account status: %w", err)
	}

	resp, err := syncer.Sync(ctx, accountID, api.SyncRequest{
		Operations: ops,
		LastSync:   maxSeq,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply demo data: %w", err)
	}

	return resp, nil
}

// EnsureUser returns the user with username, creating it with password if
// it does not exist yet. created reports whether a new user was made.
func EnsureUser(
	ctx context.Context,
	users storage.UserStorage,
	hasher PasswordHasher,
	username, password string,
	now time.Time,
) (user *models.User, created bool, err error) {
	user, err = users.GetUserByUsername(ctx, username)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		return nil, false, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, false, err
	}

	user = &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
	}
	if err := users.CreateUser(ctx, user); err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}

	return user, true, nil
}

func operation(record models.Record) (api.Operation, error) {
	row, err := json.Marshal(record)
	if err != nil {
		return api.Operation{}, fmt.Errorf("failed to encode %s: %w", record.Table(), err)
	}
	return api.Operation{Table: string(record.Table()), Row: row}, nil
}
