package models

import "encoding/json"

// Table идентифицирует одну из синхронизируемых коллекций аккаунта
type Table string

const (
	TableDecks   Table = "decks"
	TableCards   Table = "cards"
	TableReviews Table = "reviews"
)

// Tables lists every synchronized collection in resolve order.
var Tables = []Table{TableDecks, TableCards, TableReviews}

// Valid reports whether t is one of the known collections.
func (t Table) Valid() bool {
	return t.Rank() >= 0
}

// Rank returns the position of t in Tables, or -1 for unknown tables.
func (t Table) Rank() int {
	for i, known := range Tables {
		if known == t {
			return i
		}
	}
	return -1
}

// SeqField is the wire name of the server-assigned sequence number
const SeqField = "server_seq"

// Fields returns the wire fields a row of t must carry, server_seq aside.
func (t Table) Fields() []string {
	switch t {
	case TableDecks:
		return []string{"deck_id", "deck_name", "created_at"}
	case TableCards:
		return []string{"card_id", "deck_id", "front", "back", "created_at"}
	case TableReviews:
		return []string{"review_id", "card_id", "deck_id", "response", "created_at"}
	default:
		return nil
	}
}

// Record is a row of one of the synchronized collections.
// ServerSeq is assigned by the server only; clients treat it as opaque.
type Record interface {
	Table() Table
	Key() string
	Seq() int64
	SetSeq(seq int64)
	Created() float64
}

// NewRecord returns an empty record for the given table.
func NewRecord(t Table) (Record, bool) {
	switch t {
	case TableDecks:
		return &Deck{}, true
	case TableCards:
		return &Card{}, true
	case TableReviews:
		return &Review{}, true
	default:
		return nil, false
	}
}

// Deck группирует карточки
type Deck struct {
	DeckID    string  `json:"deck_id" validate:"required"`
	DeckName  string  `json:"deck_name"`
	CreatedAt float64 `json:"created_at"`
	ServerSeq int64   `json:"server_seq"`
}

func (d *Deck) Table() Table { return TableDecks }
func (d *Deck) Key() string { return d.DeckID }
func (d *Deck) Seq() int64 { return d.ServerSeq }
func (d *Deck) SetSeq(seq int64) { d.ServerSeq = seq }
func (d *Deck) Created() float64 { return d.CreatedAt }

// Card is a single front/back pair. DeckID is a reference by convention only.
type Card struct {
	CardID    string  `json:"card_id" validate:"required"`
	DeckID    string  `json:"deck_id" validate:"required"`
	Front     string  `json:"front"`
	Back      string  `json:"back"`
	CreatedAt float64 `json:"created_at"`
	ServerSeq int64   `json:"server_seq"`
}

func (c *Card) Table() Table { return TableCards }
func (c *Card) Key() string { return c.CardID }
func (c *Card) Seq() int64 { return c.ServerSeq }
func (c *Card) SetSeq(seq int64) { c.ServerSeq = seq }
func (c *Card) Created() float64 { return c.CreatedAt }

// Review is one study action on a card.
// Response is an opaque JSON scalar (usually the grade) kept as raw JSON text
// so that "3" and 3 survive the round trip unchanged.
type Review struct {
	ReviewID  string          `json:"review_id" validate:"required"`
	CardID    string          `json:"card_id" validate:"required"`
	DeckID    string          `json:"deck_id" validate:"required"`
	Response  json.RawMessage `json:"response" validate:"required"`
	CreatedAt float64         `json:"created_at"`
	ServerSeq int64           `json:"server_seq"`
}

func (r *Review) Table() Table { return TableReviews }
func (r *Review) Key() string { return r.ReviewID }
func (r *Review) Seq() int64 { return r.ServerSeq }
func (r *Review) SetSeq(seq int64) { r.ServerSeq = seq }
func (r *Review) Created() float64 { return r.CreatedAt }

// Change is a record together with the collection it belongs to.
type Change struct {
	Record Record
	Table  Table
}

// ReviewResponse is the grade a client records for a review
type ReviewResponse int

const (
	ResponseCompleteBlackout    ReviewResponse = 0
	ResponseIncorrect           ReviewResponse = 1
	ResponseCorrectButDifficult ReviewResponse = 2
	ResponsePerfect             ReviewResponse = 3
)

// Valid reports whether r is one of the known grades.
func (r ReviewResponse) Valid() bool {
	return r >= ResponseCompleteBlackout && r <= ResponsePerfect
}
