package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/flashsync/internal/models"
	"github.com/iudanet/flashsync/internal/server/storage"
)

func TestRecordStore_UpsertAndQuerySince(t *testing.T) {
	ctx := context.Background()
	s := setupRecordStore(t)

	deck := &models.Deck{DeckID: "d1", DeckName: "Spanish", CreatedAt: 100, ServerSeq: 1}
	card := &models.Card{CardID: "c1", DeckID: "d1", Front: "hola", Back: "hello", CreatedAt: 100, ServerSeq: 1}
	review := &models.Review{
		ReviewID: "r1", CardID: "c1", DeckID: "d1",
		Response: json.RawMessage(`3`), CreatedAt: 120, ServerSeq: 2,
	}

	err := s.WithTx(ctx, func(tx storage.Tx) error {
		for _, r := range []models.Record{deck, card, review} {
			if err := tx.Upsert(ctx, r); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	err = s.WithTx(ctx, func(tx storage.Tx) error {
		decks, err := tx.QuerySince(ctx, models.TableDecks, 0)
		require.NoError(t, err)
		require.Len(t, decks, 1)
		assert.Equal(t, deck, decks[0])

		cards, err := tx.QuerySince(ctx, models.TableCards, 0)
		require.NoError(t, err)
		require.Len(t, cards, 1)
		assert.Equal(t, card, cards[0])

		reviews, err := tx.QuerySince(ctx, models.TableReviews, 1)
		require.NoError(t, err)
		require.Len(t, reviews, 1)
		assert.Equal(t, review, reviews[0])

		reviews, err = tx.QuerySince(ctx, models.TableReviews, 2)
		require.NoError(t, err)
		assert.Empty(t, reviews)
		return nil
	})
	require.NoError(t, err)
}

func TestRecordStore_Upsert_ReplacesAllFields(t *testing.T) {
	ctx := context.Background()
	s := setupRecordStore(t)

	first := &models.Card{CardID: "c1", DeckID: "d1", Front: "hola", Back: "hello", CreatedAt: 100, ServerSeq: 1}
	second := &models.Card{CardID: "c1", DeckID: "d2", Front: "adios", Back: "bye", CreatedAt: 100, ServerSeq: 4}

	require.NoError(t, s.WithTx(ctx, func(tx storage.Tx) error { return tx.Upsert(ctx, first) }))
	require.NoError(t, s.WithTx(ctx, func(tx storage.Tx) error { return tx.Upsert(ctx, second) }))

	require.NoError(t, s.WithTx(ctx, func(tx storage.Tx) error {
		cards, err := tx.QuerySince(ctx, models.TableCards, 0)
		require.NoError(t, err)
		require.Len(t, cards, 1)
		assert.Equal(t, second, cards[0])
		return nil
	}))
}

func TestRecordStore_Upsert_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := setupRecordStore(t)

	deck := &models.Deck{DeckID: "d1", DeckName: "Spanish", CreatedAt: 100, ServerSeq: 3}

	for i := 0; i < 2; i++ {
		require.NoError(t, s.WithTx(ctx, func(tx storage.Tx) error { return tx.Upsert(ctx, deck) }))
	}

	require.NoError(t, s.WithTx(ctx, func(tx storage.Tx) error {
		decks, err := tx.QuerySince(ctx, models.TableDecks, 0)
		require.NoError(t, err)
		require.Len(t, decks, 1)
		assert.Equal(t, deck, decks[0])
		return nil
	}))
}

func TestRecordStore_Upsert_InvalidRecord(t *testing.T) {
	ctx := context.Background()
	s := setupRecordStore(t)

	err := s.WithTx(ctx, func(tx storage.Tx) error {
		return tx.Upsert(ctx, &models.Deck{DeckName: "no id"})
	})
	assert.ErrorIs(t, err, storage.ErrInvalidRecord)
}

func TestRecordStore_IdentityStaysText(t *testing.T) {
	ctx := context.Background()
	s := setupRecordStore(t)

	// "4" и "04" - разные ключи и не должны превращаться в число
	decks := []*models.Deck{
		{DeckID: "4", DeckName: "four", CreatedAt: 1, ServerSeq: 1},
		{DeckID: "04", DeckName: "zero four", CreatedAt: 2, ServerSeq: 1},
		{DeckID: "4.0", DeckName: "four point oh", CreatedAt: 3, ServerSeq: 1},
	}
	review := &models.Review{
		ReviewID: "1", CardID: "2", DeckID: "4",
		Response: json.RawMessage(`"3"`), CreatedAt: 4, ServerSeq: 1,
	}

	require.NoError(t, s.WithTx(ctx, func(tx storage.Tx) error {
		for _, d := range decks {
			if err := tx.Upsert(ctx, d); err != nil {
				return err
			}
		}
		return tx.Upsert(ctx, review)
	}))

	require.NoError(t, s.WithTx(ctx, func(tx storage.Tx) error {
		got, err := tx.QuerySince(ctx, models.TableDecks, 0)
		require.NoError(t, err)
		require.Len(t, got, 3)

		ids := make([]string, 0, len(got))
		for _, r := range got {
			ids = append(ids, r.Key())
		}
		assert.ElementsMatch(t, []string{"4", "04", "4.0"}, ids)

		reviews, err := tx.QuerySince(ctx, models.TableReviews, 0)
		require.NoError(t, err)
		require.Len(t, reviews, 1)
		gotReview := reviews[0].(*models.Review)
		assert.Equal(t, "1", gotReview.ReviewID)
		assert.Equal(t, "2", gotReview.CardID)
		assert.JSONEq(t, `"3"`, string(gotReview.Response))
		return nil
	}))
}

func TestRecordStore_QuerySince_Completeness(t *testing.T) {
	ctx := context.Background()
	s := setupRecordStore(t)

	require.NoError(t, s.WithTx(ctx, func(tx storage.Tx) error {
		for seq := int64(1); seq <= 5; seq++ {
			deck := &models.Deck{DeckID: string(rune('a' + seq)), CreatedAt: float64(seq), ServerSeq: seq}
			if err := tx.Upsert(ctx, deck); err != nil {
				return err
			}
		}
		return nil
	}))

	for checkpoint := int64(0); checkpoint <= 6; checkpoint++ {
		require.NoError(t, s.WithTx(ctx, func(tx storage.Tx) error {
			got, err := tx.QuerySince(ctx, models.TableDecks, checkpoint)
			require.NoError(t, err)

			want := max(0, 5-checkpoint)
			assert.Len(t, got, int(want), "checkpoint %d", checkpoint)
			for _, r := range got {
				assert.Greater(t, r.Seq(), checkpoint)
			}
			return nil
		}))
	}
}

func TestRecordStore_QuerySince_UnknownTable(t *testing.T) {
	ctx := context.Background()
	s := setupRecordStore(t)

	err := s.WithTx(ctx, func(tx storage.Tx) error {
		_, err := tx.QuerySince(ctx, "notes", 0)
		return err
	})
	assert.ErrorIs(t, err, storage.ErrInvalidRecord)
}

func TestRecordStore_MaxSeq(t *testing.T) {
	ctx := context.Background()
	s := setupRecordStore(t)

	require.NoError(t, s.WithTx(ctx, func(tx storage.Tx) error {
		got, err := tx.MaxSeq(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), got, "empty store returns floor")
		return nil
	}))

	require.NoError(t, s.WithTx(ctx, func(tx storage.Tx) error {
		if err := tx.Upsert(ctx, &models.Deck{DeckID: "d1", ServerSeq: 2}); err != nil {
			return err
		}
		if err := tx.Upsert(ctx, &models.Card{CardID: "c1", DeckID: "d1", ServerSeq: 5}); err != nil {
			return err
		}
		return tx.Upsert(ctx, &models.Review{ReviewID: "r1", CardID: "c1", DeckID: "d1", Response: json.RawMessage(`1`), ServerSeq: 3})
	}))

	require.NoError(t, s.WithTx(ctx, func(tx storage.Tx) error {
		got, err := tx.MaxSeq(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(5), got)
		return nil
	}))
}

func TestRecordStore_WithTx_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	s := setupRecordStore(t)

	errBoom := errors.New("boom")
	err := s.WithTx(ctx, func(tx storage.Tx) error {
		if err := tx.Upsert(ctx, &models.Deck{DeckID: "d1", ServerSeq: 1}); err != nil {
			return err
		}
		if err := tx.Upsert(ctx, &models.Card{CardID: "c1", DeckID: "d1", ServerSeq: 1}); err != nil {
			return err
		}
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	require.NoError(t, s.WithTx(ctx, func(tx storage.Tx) error {
		got, err := tx.MaxSeq(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), got, "rolled back writes must not be visible")
		return nil
	}))
}

func TestRecordStore_WithTx_RollbackOnPanic(t *testing.T) {
	ctx := context.Background()
	s := setupRecordStore(t)

	assert.Panics(t, func() {
		_ = s.WithTx(ctx, func(tx storage.Tx) error {
			_ = tx.Upsert(ctx, &models.Deck{DeckID: "d1", ServerSeq: 1})
			panic("boom")
		})
	})

	require.NoError(t, s.WithTx(ctx, func(tx storage.Tx) error {
		decks, err := tx.QuerySince(ctx, models.TableDecks, 0)
		require.NoError(t, err)
		assert.Empty(t, decks)
		return nil
	}))
}

func setupRecordStore(t *testing.T) *RecordStore {
	t.Helper()

	s, err := OpenRecordStore(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}
