package main

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bkjNprosoft/tarot-2026/internal/domain"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <reading-id>",
		Short: "Show one saved reading in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid reading ID %q", args[0])
			}

			app, err := newCLIApp()
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			reading, err := app.readingService.GetReading(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Reading %s\n", reading.ID)
			fmt.Fprintf(out, "Category: %s (%s)\n", reading.Category.Title(), reading.Category)
			fmt.Fprintf(out, "Drawn:    %s\n", reading.CreatedAt.Local().Format("2006-01-02 15:04"))

			for i, d := range reading.Drawn() {
				fmt.Fprintf(out, "Card %d:   %s\n", i+1, formatDrawnCard(app, d))
			}

			printInterpretation(out, reading)
			return nil
		},
	}
}

// printInterpretation renders the AI interpretation block, or a short note
// when the reading has none.
func printInterpretation(out io.Writer, reading *domain.Reading) {
	in := reading.AIInterpretation
	if in == nil {
		fmt.Fprintln(out, "\nNo AI interpretation attached.")
		return
	}

	fmt.Fprintln(out, "\n--- Interpretation ---")
	for _, card := range in.IndividualCards {
		fmt.Fprintf(out, "\n%s\n%s\n", card.CardName, card.Interpretation)
	}

	fmt.Fprintf(out, "\nSummary: %s\n\n%s\n", in.Combination.Summary, in.Combination.Detailed)

	if len(in.Combination.MusicRecommendations) > 0 {
		fmt.Fprintln(out, "\nMusic for this reading:")
		for _, rec := range in.Combination.MusicRecommendations {
			fmt.Fprintf(out, "  [%s] %s\n        %s\n", rec.Type, rec.Title, rec.YouTubeSearchURL)
		}
	}
}
