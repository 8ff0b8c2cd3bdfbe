package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/iudanet/flashsync/internal/client/storage"
	"github.com/iudanet/flashsync/internal/models"
)

var (
	// ErrEmptyField is returned when a required text field is blank
	ErrEmptyField = errors.New("field must not be empty")

	// ErrInvalidResponse is returned for a review grade outside 0..3
	ErrInvalidResponse = errors.New("invalid review response")
)

// Service creates and reads decks, cards and reviews in the local store.
// Every write leaves the row unsynced until the next sync.
type Service struct {
	records  storage.RecordStorage
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
}

// NewService creates a new data service
func NewService(records storage.RecordStorage) *Service {
	return &Service{
		records:  records,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// AddDeck creates a new deck
func (s *Service) AddDeck(ctx context.Context, name string) (*models.Deck, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("deck name: %w", ErrEmptyField)
	}

	deck := &models.Deck{
		DeckID:    s.newID(),
		DeckName:  name,
		CreatedAt: s.timestamp(),
	}
	if err := s.put(ctx, deck); err != nil {
		return nil, err
	}
	return deck, nil
}

// RenameDeck changes the name of an existing deck
func (s *Service) RenameDeck(ctx context.Context, deckID, name string) (*models.Deck, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("deck name: %w", ErrEmptyField)
	}

	deck, err := s.getDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}

	deck.DeckName = name
	if err := s.put(ctx, deck); err != nil {
		return nil, err
	}
	return deck, nil
}

// AddCard creates a card in an existing local deck
func (s *Service) AddCard(ctx context.Context, deckID, front, back string) (*models.Card, error) {
	if strings.TrimSpace(front) == "" {
		return nil, fmt.Errorf("card front: %w", ErrEmptyField)
	}

	if _, err := s.getDeck(ctx, deckID); err != nil {
		return nil, err
	}

	card := &models.Card{
		CardID:    s.newID(),
		DeckID:    deckID,
		Front:     front,
		Back:      back,
		CreatedAt: s.timestamp(),
	}
	if err := s.put(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// AddReview records a grade for an existing local card
func (s *Service) AddReview(ctx context.Context, cardID string, response models.ReviewResponse) (*models.Review, error) {
	if !response.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidResponse, response)
	}

	rec, err := s.records.GetRecord(ctx, models.TableCards, cardID)
	if err != nil {
		return nil, fmt.Errorf("card %q: %w", cardID, err)
	}
	card := rec.(*models.Card)

	review := &models.Review{
		ReviewID:  s.newID(),
		CardID:    card.CardID,
		DeckID:    card.DeckID,
		Response:  json.RawMessage(strconv.Itoa(int(response))),
		CreatedAt: s.timestamp(),
	}
	if err := s.put(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListDecks returns all local decks ordered by creation time
func (s *Service) ListDecks(ctx context.Context) ([]*models.Deck, error) {
	records, err := s.records.ListRecords(ctx, models.TableDecks)
	if err != nil {
		return nil, err
	}

	decks := make([]*models.Deck, 0, len(records))
	for _, r := range records {
		decks = append(decks, r.(*models.Deck))
	}
	return decks, nil
}

// ListCards returns local cards, only those of deckID when it is not empty
func (s *Service) ListCards(ctx context.Context, deckID string) ([]*models.Card, error) {
	records, err := s.records.ListRecords(ctx, models.TableCards)
	if err != nil {
		return nil, err
	}

	cards := make([]*models.Card, 0, len(records))
	for _, r := range records {
		card := r.(*models.Card)
		if deckID == "" || card.DeckID == deckID {
			cards = append(cards, card)
		}
	}
	return cards, nil
}

// ListReviews returns local reviews, only those of cardID when it is not empty
func (s *Service) ListReviews(ctx context.Context, cardID string) ([]*models.Review, error) {
	records, err := s.records.ListRecords(ctx, models.TableReviews)
	if err != nil {
		return nil, err
	}

	reviews := make([]*models.Review, 0, len(records))
	for _, r := range records {
		review := r.(*models.Review)
		if cardID == "" || review.CardID == cardID {
			reviews = append(reviews, review)
		}
	}
	return reviews, nil
}

func (s *Service) getDeck(ctx context.Context, deckID string) (*models.Deck, error) {
	rec, err := s.records.GetRecord(ctx, models.TableDecks, deckID)
	if err != nil {
		return nil, fmt.Errorf("deck %q: %w", deckID, err)
	}
	return rec.(*models.Deck), nil
}

func (s *Service) put(ctx context.Context, rec models.Record) error {
	if err := s.validate.Struct(rec); err != nil {
		return fmt.Errorf("invalid %s row: %w", rec.Table(), err)
	}
	if err := s.records.PutLocal(ctx, rec); err != nil {
		return fmt.Errorf("failed to save %s row: %w", rec.Table(), err)
	}
	return nil
}

// timestamp returns seconds since epoch with sub-second precision
func (s *Service) timestamp() float64 {
	return float64(s.now().UnixMicro()) / 1e6
}
