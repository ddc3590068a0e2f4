package main

import (
	"fmt"
	"strconv"

	"cp-valuation/internal/registry"

	"github.com/spf13/cobra"
)

var calendarAll bool

var calendarCmd = &cobra.Command{
	Use:   "calendar <year> [utility]",
	Short: "Print reference CP hours as a cp_dates value",
	Long: `Looks up historical CP hours from the built-in reference table.
With only a year, lists the utilities that have data.
With --all, prints the union of the PJM and utility peaks.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid year %q", args[0])
		}
		out := cmd.OutOrStdout()
		if len(args) == 1 {
			utils, err := registry.Utilities(year)
			if err != nil {
				return err
			}
			for _, u := range utils {
				fmt.Fprintln(out, u)
			}
			return nil
		}

		utility := registry.Utility(args[1])
		if calendarAll {
			events, err := registry.AllCPs(year, utility)
			if err != nil {
				return err
			}
			for _, e := range events {
				fmt.Fprintln(out, e)
			}
			return nil
		}
		dates, err := registry.DatesString(year, utility)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, dates)
		return nil
	},
}

func init() {
	calendarCmd.Flags().BoolVar(&calendarAll, "all", false, "Union of PJM and utility peaks")
	rootCmd.AddCommand(calendarCmd)
}
