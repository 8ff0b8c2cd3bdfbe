package models

import (
	"encoding/json"
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Valid(t *testing.T) {
	tests := []struct {
		table Table
		want  bool
		rank  int
	}{
		{table: TableDecks, want: true, rank: 0},
		{table: TableCards, want: true, rank: 1},
		{table: TableReviews, want: true, rank: 2},
		{table: "notes", want: false, rank: -1},
		{table: "", want: false, rank: -1},
		{table: "Decks", want: false, rank: -1},
	}

	for _, tt := range tests {
		t.Run(string(tt.table), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.table.Valid())
			assert.Equal(t, tt.rank, tt.table.Rank())
		})
	}
}

func TestNewRecord(t *testing.T) {
	for _, table := range Tables {
		t.Run(string(table), func(t *testing.T) {
			record, ok := NewRecord(table)
			require.True(t, ok)
			assert.Equal(t, table, record.Table())

			record.SetSeq(42)
			assert.Equal(t, int64(42), record.Seq())
		})
	}

	record, ok := NewRecord("notes")
	assert.False(t, ok)
	assert.Nil(t, record)
}

func TestRecord_Accessors(t *testing.T) {
	deck := &Deck{DeckID: "d1", DeckName: "Spanish", CreatedAt: 100}
	card := &Card{CardID: "c1", DeckID: "d1", CreatedAt: 101}
	review := &Review{ReviewID: "r1", CardID: "c1", DeckID: "d1", Response: []byte("3"), CreatedAt: 102}

	assert.Equal(t, "d1", deck.Key())
	assert.Equal(t, "c1", card.Key())
	assert.Equal(t, "r1", review.Key())

	assert.Equal(t, 100.0, deck.Created())
	assert.Equal(t, 101.0, card.Created())
	assert.Equal(t, 102.0, review.Created())
}

func TestReviewResponse_Valid(t *testing.T) {
	for r := ReviewResponse(-1); r <= 4; r++ {
		assert.Equal(t, r >= 0 && r <= 3, r.Valid(), "response %d", r)
	}
}

func TestTable_FieldsMatchRecordTags(t *testing.T) {
	for _, table := range Tables {
		t.Run(string(table), func(t *testing.T) {
			record, ok := NewRecord(table)
			require.True(t, ok)

			data, err := json.Marshal(record)
			require.NoError(t, err)

			var fields map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(data, &fields))
			delete(fields, SeqField)

			assert.ElementsMatch(t, table.Fields(), slices.Collect(maps.Keys(fields)))
		})
	}

	assert.Nil(t, Table("notes").Fields())
}
