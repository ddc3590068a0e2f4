package main

import (
	"fmt"

	"cp-valuation/internal/valuation"

	"github.com/spf13/cobra"
)

var objectiveCmd = &cobra.Command{
	Use:   "objective",
	Short: "Show the CP cost terms injected into each optimization window",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		engine, err := valuation.New(cfg, log)
		if err != nil {
			return err
		}
		plan, err := engine.Plan(valuation.NetLoadVariables)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-10s %-6s %-24s %-6s %s\n", "window", "steps", "term", "vars", "sum(coef)")
		for _, w := range plan {
			if len(w.Terms) == 0 {
				fmt.Fprintf(out, "%-10s %-6d %-24s\n", w.Window, w.Steps, "-")
				continue
			}
			for _, s := range valuation.SummarizeTerms(w.Terms) {
				fmt.Fprintf(out, "%-10s %-6d %-24s %-6d %.4f\n", w.Window, w.Steps, s.Name, s.Variables, s.CoefficientTotal)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(objectiveCmd)
}
