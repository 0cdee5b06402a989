package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bkjNprosoft/tarot-2026/internal/domain"
	"github.com/bkjNprosoft/tarot-2026/internal/draw"
	"github.com/bkjNprosoft/tarot-2026/internal/session"
)

func newDrawCmd() *cobra.Command {
	var categoryFlag string

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Draw a three-card reading",
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := domain.ParseCategory(categoryFlag)
			if err != nil {
				return fmt.Errorf("unknown category %q (choose one of: %s)",
					categoryFlag, strings.Join(categoryNames(), ", "))
			}

			app, err := newCLIApp()
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			return runDraw(cmd, app, category)
		},
	}

	cmd.Flags().StringVarP(&categoryFlag, "category", "c", "general",
		"reading category ("+strings.Join(categoryNames(), ", ")+")")
	return cmd
}

// runDraw walks one session through the machine: shuffle, three picks, then
// the saved reading with its interpretation.
func runDraw(cmd *cobra.Command, app *cliApp, category domain.Category) error {
	engine := draw.NewEngine(app.catalog, rand.New(rand.NewSource(time.Now().UnixNano())))
	machine := session.NewMachine(engine, app.readingService, category, nil, app.logger)

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s (%s)\n", category.Title(), category)
	fmt.Fprintln(out, "Shuffling the deck...")
	if err := machine.StartShuffle(ctx); err != nil {
		return err
	}

	for i := 1; i <= domain.ReadingCardCount; i++ {
		if i == domain.ReadingCardCount {
			fmt.Fprintln(out, "Drawing the last card and consulting the reader...")
		}

		card, err := machine.SelectNext(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Card %d: %s\n", i, formatDrawnCard(app, card))
	}

	reading := machine.Reading()
	if reading == nil {
		return fmt.Errorf("session finished without a reading")
	}

	fmt.Fprintf(out, "\nReading saved: %s\n", reading.ID)
	printInterpretation(out, reading)
	return nil
}

func categoryNames() []string {
	categories := domain.Categories()
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return names
}

func formatDrawnCard(app *cliApp, d domain.DrawnCard) string {
	orientation := "upright"
	if d.Reversed {
		orientation = "reversed"
	}

	card, ok := app.catalog.CardByID(d.CardID)
	if !ok {
		return fmt.Sprintf("%s (%s)", d.CardID, orientation)
	}
	return fmt.Sprintf("%s / %s (%s)", card.LocalizedName, card.Name, orientation)
}
