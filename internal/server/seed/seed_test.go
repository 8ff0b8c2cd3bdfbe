package seed

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/flashsync/internal/crypto"
	"github.com/iudanet/flashsync/internal/models"
	"github.com/iudanet/flashsync/internal/server/storage/sqlite"
	"github.com/iudanet/flashsync/internal/server/sync"
	"github.com/iudanet/flashsync/pkg/api"
)

func TestDemoOperations(t *testing.T) {
	ops, err := DemoOperations(time.Unix(1700000000, 0))
	require.NoError(t, err)
	require.Len(t, ops, 2+10+3)

	decks := map[string]string{}
	cardsPerDeck := map[string]int{}
	for _, op := range ops {
		switch op.Table {
		case "decks":
			var deck models.Deck
			require.NoError(t, json.Unmarshal(op.Row, &deck))
			decks[deck.DeckID] = deck.DeckName
			assert.Equal(t, float64(1700000000), deck.CreatedAt)
			assert.Zero(t, deck.ServerSeq)
		case "cards":
			var card models.Card
			require.NoError(t, json.Unmarshal(op.Row, &card))
			require.Contains(t, decks, card.DeckID, "deck precedes its cards")
			cardsPerDeck[decks[card.DeckID]]++
		default:
			t.Fatalf("unexpected table %q", op.Table)
		}
	}

	assert.Equal(t, map[string]int{"Deck 0": 10, "Deck 1": 3}, cardsPerDeck)
}

func TestSeed_GoesThroughSync(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	provider, err := sqlite.NewProvider(t.TempDir(), 2, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Close() })

	svc := sync.NewService(provider, logger)
	account := uuid.NewString()

	resp, err := Seed(ctx, svc, account, time.Now())
	require.NoError(t, err)
	require.Len(t, resp.Local, 15)

	maxSeq, err := svc.Status(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, int64(1), maxSeq)

	// Повторный seed идет следующим батчем
	_, err = Seed(ctx, svc, account, time.Now())
	require.NoError(t, err)

	maxSeq, err = svc.Status(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, int64(2), maxSeq)

	all, err := svc.Sync(ctx, account, api.SyncRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Remote, 30)
}

func TestEnsureUser(t *testing.T) {
	ctx := context.Background()

	users, err := sqlite.New(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = users.Close() })

	hasher := crypto.NewPasswordHasher(bcrypt.MinCost)

	user, created, err := EnsureUser(ctx, users, hasher, "alice", "test1234", time.Now())
	require.NoError(t, err)
	assert.True(t, created)
	assert.NoError(t, hasher.Verify("test1234", user.PasswordHash))

	again, created, err := EnsureUser(ctx, users, hasher, "alice", "other-password", time.Now())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, user.ID, again.ID)
	assert.NoError(t, hasher.Verify("test1234", again.PasswordHash), "existing password is kept")
}
