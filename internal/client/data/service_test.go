package data

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/flashsync/internal/client/storage"
	"github.com/iudanet/flashsync/internal/client/storage/boltdb"
	"github.com/iudanet/flashsync/internal/models"
)

func newTestService(t *testing.T) (*Service, *boltdb.Storage) {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	svc := NewService(store)
	now := time.Unix(1_700_000_000, 0)
	svc.now = func() time.Time {
		now = now.Add(500 * time.Millisecond)
		return now
	}
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}

	return svc, store
}

func TestService_AddDeck(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	deck, err := svc.AddDeck(ctx, "  Spanish  ")
	require.NoError(t, err)
	assert.Equal(t, "id-1", deck.DeckID)
	assert.Equal(t, "Spanish", deck.DeckName)
	assert.InDelta(t, 1_700_000_000.5, deck.CreatedAt, 1e-6)
	assert.Equal(t, int64(0), deck.ServerSeq)

	ops, err := store.Unsynced(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, "decks", ops[0].Table)

	_, err = svc.AddDeck(ctx, "   ")
	assert.ErrorIs(t, err, ErrEmptyField)
}

func TestService_RenameDeck(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	deck, err := svc.AddDeck(ctx, "Spanish")
	require.NoError(t, err)

	renamed, err := svc.RenameDeck(ctx, deck.DeckID, "Español")
	require.NoError(t, err)
	assert.Equal(t, deck.DeckID, renamed.DeckID)
	assert.Equal(t, deck.CreatedAt, renamed.CreatedAt)

	decks, err := svc.ListDecks(ctx)
	require.NoError(t, err)
	require.Len(t, decks, 1)
	assert.Equal(t, "Español", decks[0].DeckName)

	_, err = svc.RenameDeck(ctx, "missing", "x")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestService_AddCard(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	deck, err := svc.AddDeck(ctx, "Spanish")
	require.NoError(t, err)

	tests := []struct {
		wantErr error
		name    string
		deckID  string
		front   string
	}{
		{name: "valid", deckID: deck.DeckID, front: "hola"},
		{name: "unknown deck", deckID: "missing", front: "hola", wantErr: storage.ErrRecordNotFound},
		{name: "empty front", deckID: deck.DeckID, front: " ", wantErr: ErrEmptyField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card, err := svc.AddCard(ctx, tt.deckID, tt.front, "hello")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, card)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.deckID, card.DeckID)
			assert.Equal(t, "hello", card.Back)
		})
	}
}

func TestService_AddReview(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	deck, err := svc.AddDeck(ctx, "Spanish")
	require.NoError(t, err)
	card, err := svc.AddCard(ctx, deck.DeckID, "hola", "hello")
	require.NoError(t, err)

	review, err := svc.AddReview(ctx, card.CardID, models.ResponsePerfect)
	require.NoError(t, err)
	assert.Equal(t, card.CardID, review.CardID)
	assert.Equal(t, deck.DeckID, review.DeckID)
	assert.JSONEq(t, `3`, string(review.Response))

	_, err = svc.AddReview(ctx, card.CardID, models.ReviewResponse(4))
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = svc.AddReview(ctx, "missing", models.ResponseIncorrect)
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)

	reviews, err := svc.ListReviews(ctx, card.CardID)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)

	reviews, err = svc.ListReviews(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestService_ListCards_FiltersByDeck(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	spanish, err := svc.AddDeck(ctx, "Spanish")
	require.NoError(t, err)
	french, err := svc.AddDeck(ctx, "French")
	require.NoError(t, err)

	_, err = svc.AddCard(ctx, spanish.DeckID, "hola", "hello")
	require.NoError(t, err)
	_, err = svc.AddCard(ctx, french.DeckID, "bonjour", "hello")
	require.NoError(t, err)
	_, err = svc.AddCard(ctx, spanish.DeckID, "adios", "bye")
	require.NoError(t, err)

	all, err := svc.ListCards(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	cards, err := svc.ListCards(ctx, spanish.DeckID)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "hola", cards[0].Front)
	assert.Equal(t, "adios", cards[1].Front)

	decks, err := svc.ListDecks(ctx)
	require.NoError(t, err)
	require.Len(t, decks, 2)
	assert.Equal(t, "Spanish", decks[0].DeckName)
}

func TestService_StorageErrors(t *testing.T) {
	ctx := context.Background()
	errBoom := errors.New("boom")

	mock := &storage.RecordStorageMock{
		PutLocalFunc: func(ctx context.Context, rec models.Record) error {
			return errBoom
		},
		ListRecordsFunc: func(ctx context.Context, table models.Table) ([]models.Record, error) {
			return nil, errBoom
		},
	}
	svc := NewService(mock)

	_, err := svc.AddDeck(ctx, "Spanish")
	assert.ErrorIs(t, err, errBoom)
	assert.Len(t, mock.PutLocalCalls(), 1)

	_, err = svc.ListDecks(ctx)
	assert.ErrorIs(t, err, errBoom)
	_, err = svc.ListCards(ctx, "")
	assert.ErrorIs(t, err, errBoom)
}
