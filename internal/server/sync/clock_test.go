package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/flashsync/internal/models"
)

func TestNextSeq(t *testing.T) {
	tests := []struct {
		name       string
		remote     []models.Change
		checkpoint int64
		want       int64
	}{
		{
			name:       "empty store, fresh client",
			remote:     nil,
			checkpoint: 0,
			want:       1,
		},
		{
			name:       "checkpoint ahead of every stored record",
			remote:     []models.Change{},
			checkpoint: 41,
			want:       42,
		},
		{
			name: "base is max of remote",
			remote: []models.Change{
				{Table: models.TableDecks, Record: &models.Deck{DeckID: "d1", ServerSeq: 5}},
				{Table: models.TableCards, Record: &models.Card{CardID: "c1", ServerSeq: 9}},
				{Table: models.TableReviews, Record: &models.Review{ReviewID: "r1", ServerSeq: 7}},
			},
			checkpoint: 3,
			want:       10,
		},
		{
			name: "unsorted remote",
			remote: []models.Change{
				{Table: models.TableCards, Record: &models.Card{CardID: "c1", ServerSeq: 12}},
				{Table: models.TableDecks, Record: &models.Deck{DeckID: "d1", ServerSeq: 4}},
			},
			checkpoint: 0,
			want:       13,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextSeq(tt.remote, tt.checkpoint)
			assert.Equal(t, tt.want, got)
			assert.Greater(t, got, tt.checkpoint)
			for _, c := range tt.remote {
				assert.Greater(t, got, c.Record.Seq())
			}
		})
	}
}
