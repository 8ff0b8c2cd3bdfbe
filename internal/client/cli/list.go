package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *Cli) newListCommand() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:       "list decks|cards|reviews",
		Short:     "List local decks, cards or reviews",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"decks", "cards", "reviews"},
	}
	cmd.RunE = c.withStore(func(ctx context.Context, args []string) error {
		switch args[0] {
		case "decks":
			return c.runListDecks(ctx)
		case "cards":
			return c.runListCards(ctx, filter)
		default:
			return c.runListReviews(ctx, filter)
		}
	})
	cmd.Flags().StringVar(&filter, "of", "", "only cards of this deck id, or reviews of this card id")

	return cmd
}

func (c *Cli) runListDecks(ctx context.Context) error {
	decks, err := c.data.ListDecks(ctx)
	if err != nil {
		return fmt.Errorf("failed to list decks: %w", err)
	}

	if len(decks) == 0 {
		c.io.Println("No decks found.")
		c.io.Println("Use 'flashsync deck add NAME' to create your first deck.")
		return nil
	}

	w := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSYNCED")
	for _, d := range decks {
		fmt.Fprintf(w, "%s\t%s\t%s\n", d.DeckID, d.DeckName, synced(d.ServerSeq))
	}
	return w.Flush()
}

func (c *Cli) runListCards(ctx context.Context, deckID string) error {
	cards, err := c.data.ListCards(ctx, deckID)
	if err != nil {
		return fmt.Errorf("failed to list cards: %w", err)
	}

	if len(cards) == 0 {
		c.io.Println("No cards found.")
		return nil
	}

	w := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDECK\tFRONT\tBACK\tSYNCED")
	for _, card := range cards {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", card.CardID, card.DeckID, card.Front, card.Back, synced(card.ServerSeq))
	}
	return w.Flush()
}

func (c *Cli) runListReviews(ctx context.Context, cardID string) error {
	reviews, err := c.data.ListReviews(ctx, cardID)
	if err != nil {
		return fmt.Errorf("failed to list reviews: %w", err)
	}

	if len(reviews) == 0 {
		c.io.Println("No reviews found.")
		return nil
	}

	w := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCARD\tRESPONSE\tSYNCED")
	for _, r := range reviews {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ReviewID, r.CardID, r.Response, synced(r.ServerSeq))
	}
	return w.Flush()
}

func synced(seq int64) string {
	if seq == 0 {
		return "no"
	}
	return fmt.Sprintf("#%d", seq)
}
