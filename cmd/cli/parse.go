package main

import (
	"fmt"

	"cp-valuation/internal/cp"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <cp_dates>",
	Short: "Parse and validate a cp_dates string",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := cp.ParseEvents(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-12s %s\n", "date", "HE")
		for _, e := range events {
			fmt.Fprintf(out, "%-12s %d\n", e.Date, e.HourEnding)
		}
		fmt.Fprintf(out, "%d events: %s\n", len(events), cp.FormatEvents(events))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
