package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iudanet/flashsync/internal/models"
)

func (c *Cli) newDeckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deck",
		Short: "Manage decks",
	}

	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a deck",
		Args:  cobra.ExactArgs(1),
	}
	add.RunE = c.withStore(func(ctx context.Context, args []string) error {
		deck, err := c.data.AddDeck(ctx, args[0])
		if err != nil {
			return err
		}
		c.io.Printf("✓ Deck %q created: %s\n", deck.DeckName, deck.DeckID)
		return nil
	})

	rename := &cobra.Command{
		Use:   "rename DECK_ID NAME",
		Short: "Rename a deck",
		Args:  cobra.ExactArgs(2),
	}
	rename.RunE = c.withStore(func(ctx context.Context, args []string) error {
		deck, err := c.data.RenameDeck(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		c.io.Printf("✓ Deck %s renamed to %q\n", deck.DeckID, deck.DeckName)
		return nil
	})

	cmd.AddCommand(add, rename)
	return cmd
}

func (c *Cli) newCardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage cards",
	}

	add := &cobra.Command{
		Use:   "add DECK_ID FRONT BACK",
		Short: "Create a card in a deck",
		Args:  cobra.ExactArgs(3),
	}
	add.RunE = c.withStore(func(ctx context.Context, args []string) error {
		card, err := c.data.AddCard(ctx, args[0], args[1], args[2])
		if err != nil {
			return err
		}
		c.io.Printf("✓ Card created: %s\n", card.CardID)
		return nil
	})

	cmd.AddCommand(add)
	return cmd
}

func (c *Cli) newReviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Record reviews",
	}

	add := &cobra.Command{
		Use:   "add CARD_ID RESPONSE",
		Short: "Record a review of a card",
		Long: `Record a review of a card.

RESPONSE is the grade:
  0  complete blackout
  1  incorrect
  2  correct but difficult
  3  perfect`,
		Args: cobra.ExactArgs(2),
	}
	add.RunE = c.withStore(func(ctx context.Context, args []string) error {
		grade, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("response must be a number from 0 to 3: %q", args[1])
		}

		review, err := c.data.AddReview(ctx, args[0], models.ReviewResponse(grade))
		if err != nil {
			return err
		}
		c.io.Printf("✓ Review recorded: %s\n", review.ReviewID)
		return nil
	})

	cmd.AddCommand(add)
	return cmd
}
