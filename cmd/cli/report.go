package main

import (
	"fmt"

	"cp-valuation/internal/data"
	"cp-valuation/internal/valuation"

	"github.com/spf13/cobra"
)

var (
	resultsPath  string
	outDir       string
	writeXLSX    bool
	horizonYears []int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Attribute realized optimizer output to avoided CP charges",
	RunE: func(cmd *cobra.Command, args []string) error {
		if resultsPath == "" {
			return fmt.Errorf("--results is required")
		}
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		engine, err := valuation.New(cfg, log)
		if err != nil {
			return err
		}
		if len(horizonYears) > 0 {
			if err := engine.SetHorizon(horizonYears); err != nil {
				return err
			}
		}

		loc, err := cfg.Scenario.Location()
		if err != nil {
			return err
		}
		results, err := data.LoadResults(resultsPath, loc)
		if err != nil {
			return fmt.Errorf("load results: %w", err)
		}
		res, err := engine.Report(results)
		if err != nil {
			return err
		}
		if err := res.Write(outDir, writeXLSX); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, col := range res.Proforma.Columns {
			for i, y := range res.Proforma.Years {
				fmt.Fprintf(out, "%d  %-40s $%.2f\n", y, col.Name, col.Values[i])
			}
		}
		fmt.Fprintf(out, "Wrote CP reports to %s\n", outDir)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&resultsPath, "results", "", "Optimizer timeseries results (CSV or JSON)")
	reportCmd.Flags().StringVar(&outDir, "out", "results/cp", "Output directory")
	reportCmd.Flags().BoolVar(&writeXLSX, "xlsx", false, "Also write pro_forma.xlsx")
	reportCmd.Flags().IntSliceVar(&horizonYears, "years", nil, "Adapt the CP horizon to these years before reporting")
	rootCmd.AddCommand(reportCmd)
}
