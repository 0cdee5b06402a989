package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List saved readings, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newCLIApp()
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			readings, err := app.readingService.ListReadings(cmd.Context(), nil)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(readings) == 0 {
				fmt.Fprintln(out, "No readings yet. Try: tarot draw --category general")
				return nil
			}

			for _, r := range readings {
				interpreted := " "
				if r.AIInterpretation != nil {
					interpreted = "*"
				}
				fmt.Fprintf(out, "%s %s  %-13s  %d cards  %s\n",
					interpreted,
					r.CreatedAt.Local().Format("2006-01-02 15:04"),
					r.Category,
					len(r.Cards),
					r.ID)
			}
			fmt.Fprintln(out, "\n* = has AI interpretation")
			return nil
		},
	}
}
