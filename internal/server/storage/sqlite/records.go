package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iudanet/flashsync/internal/models"
	"github.com/iudanet/flashsync/internal/server/storage"
)

// RecordStore is the SQLite record store of a single account.
// It holds decks, cards and reviews in STRICT tables.
type RecordStore struct {
	db *sql.DB
}

// OpenRecordStore opens (creating if needed) the account database at dbPath
// and brings its schema up to date.
func OpenRecordStore(ctx context.Context, dbPath string) (*RecordStore, error) {
	db, err := openDB(ctx, dbPath)
	if err != nil {
		return nil, err
	}

	if err := migrate(ctx, db, recordsMigrations); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &RecordStore{db: db}, nil
}

// Close closes the database connection
func (s *RecordStore) Close() error {
	return s.db.Close()
}

// WithTx runs fn inside one database transaction.
// Commit happens only when fn returns nil; any error or panic rolls back
// every write fn made.
func (s *RecordStore) WithTx(ctx context.Context, fn func(tx storage.Tx) error) (err error) {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := sqlTx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("failed to rollback transaction: %w", rbErr))
		}
	}()

	if err := fn(&txStore{tx: sqlTx}); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true

	return nil
}

// txStore implements storage.Tx on top of *sql.Tx
type txStore struct {
	tx *sql.Tx
}

// Upsert inserts the record or replaces every field of the existing one
func (t *txStore) Upsert(ctx context.Context, record models.Record) error {
	if record == nil || record.Key() == "" {
		return fmt.Errorf("%w: empty identity", storage.ErrInvalidRecord)
	}

	var err error
	switch r := record.(type) {
	case *models.Deck:
		_, err = t.tx.ExecContext(ctx, `
			INSERT INTO decks (deck_id, deck_name, created_at, server_seq)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (deck_id) DO UPDATE SET
				deck_name = excluded.deck_name,
				created_at = excluded.created_at,
				server_seq = excluded.server_seq
		`, r.DeckID, r.DeckName, r.CreatedAt, r.ServerSeq)
	case *models.Card:
		_, err = t.tx.ExecContext(ctx, `
			INSERT INTO cards (card_id, deck_id, front, back, created_at, server_seq)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (card_id) DO UPDATE SET
				deck_id = excluded.deck_id,
				front = excluded.front,
				back = excluded.back,
				created_at = excluded.created_at,
				server_seq = excluded.server_seq
		`, r.CardID, r.DeckID, r.Front, r.Back, r.CreatedAt, r.ServerSeq)
	case *models.Review:
		_, err = t.tx.ExecContext(ctx, `
			INSERT INTO reviews (review_id, card_id, deck_id, response, created_at, server_seq)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (review_id) DO UPDATE SET
				card_id = excluded.card_id,
				deck_id = excluded.deck_id,
				response = excluded.response,
				created_at = excluded.created_at,
				server_seq = excluded.server_seq
		`, r.ReviewID, r.CardID, r.DeckID, string(r.Response), r.CreatedAt, r.ServerSeq)
	default:
		return fmt.Errorf("%w: unsupported record type %T", storage.ErrInvalidRecord, record)
	}

	if err != nil {
		return fmt.Errorf("failed to upsert %s %q: %w", record.Table(), record.Key(), err)
	}

	return nil
}

// QuerySince returns every record of table with server_seq > seq
func (t *txStore) QuerySince(ctx context.Context, table models.Table, seq int64) ([]models.Record, error) {
	var query string
	switch table {
	case models.TableDecks:
		query = `
			SELECT deck_id, deck_name, created_at, server_seq, typeof(deck_id)
			FROM decks
			WHERE server_seq > ?
			ORDER BY server_seq, created_at, deck_id
		`
	case models.TableCards:
		query = `
			SELECT card_id, deck_id, front, back, created_at, server_seq,
			       typeof(card_id), typeof(deck_id)
			FROM cards
			WHERE server_seq > ?
			ORDER BY server_seq, created_at, card_id
		`
	case models.TableReviews:
		query = `
			SELECT review_id, card_id, deck_id, response, created_at, server_seq,
			       typeof(review_id), typeof(card_id), typeof(deck_id)
			FROM reviews
			WHERE server_seq > ?
			ORDER BY server_seq, created_at, review_id
		`
	default:
		return nil, fmt.Errorf("%w: unknown table %q", storage.ErrInvalidRecord, table)
	}

	rows, err := t.tx.QueryContext(ctx, query, seq)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s since %d: %w", table, seq, err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		record, err := scanRecord(table, rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}

// MaxSeq returns the highest server_seq across decks, cards and reviews
func (t *txStore) MaxSeq(ctx context.Context, floor int64) (int64, error) {
	query := `
		SELECT MAX(seq) FROM (
			SELECT MAX(server_seq) AS seq FROM decks
			UNION ALL
			SELECT MAX(server_seq) FROM cards
			UNION ALL
			SELECT MAX(server_seq) FROM reviews
		)
	`

	var maxSeq sql.NullInt64
	if err := t.tx.QueryRowContext(ctx, query).Scan(&maxSeq); err != nil {
		return 0, fmt.Errorf("failed to get max server_seq: %w", err)
	}

	if !maxSeq.Valid {
		return floor, nil
	}

	return maxSeq.Int64, nil
}

// scanRecord читает одну строку таблицы и проверяет, что все идентификаторы
// хранятся как текст: числовой "4" не должен превратиться в 4
func scanRecord(table models.Table, rows *sql.Rows) (models.Record, error) {
	switch table {
	case models.TableDecks:
		deck := &models.Deck{}
		var idType string
		if err := rows.Scan(&deck.DeckID, &deck.DeckName, &deck.CreatedAt, &deck.ServerSeq, &idType); err != nil {
			return nil, fmt.Errorf("failed to scan deck: %w", err)
		}
		if err := checkText(table, deck.DeckID, idType); err != nil {
			return nil, err
		}
		return deck, nil

	case models.TableCards:
		card := &models.Card{}
		var idType, deckType string
		if err := rows.Scan(&card.CardID, &card.DeckID, &card.Front, &card.Back,
			&card.CreatedAt, &card.ServerSeq, &idType, &deckType); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		if err := checkText(table, card.CardID, idType, deckType); err != nil {
			return nil, err
		}
		return card, nil

	case models.TableReviews:
		review := &models.Review{}
		var response, idType, cardType, deckType string
		if err := rows.Scan(&review.ReviewID, &review.CardID, &review.DeckID, &response,
			&review.CreatedAt, &review.ServerSeq, &idType, &cardType, &deckType); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		if err := checkText(table, review.ReviewID, idType, cardType, deckType); err != nil {
			return nil, err
		}
		if !json.Valid([]byte(response)) {
			return nil, fmt.Errorf("%w: %s %q has invalid response", storage.ErrCorruptRecord, table, review.ReviewID)
		}
		review.Response = json.RawMessage(response)
		return review, nil
	}

	return nil, fmt.Errorf("%w: unknown table %q", storage.ErrInvalidRecord, table)
}

func checkText(table models.Table, key string, types ...string) error {
	for _, typ := range types {
		if typ != "text" {
			return fmt.Errorf("%w: %s %q has %s identity column", storage.ErrCorruptRecord, table, key, typ)
		}
	}
	return nil
}
