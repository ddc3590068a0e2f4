package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"cp-valuation/internal/cp"
)

// DrillDownHeader is the column layout of a cp_event_detail artifact.
var DrillDownHeader = []string{
	"Type",
	"Date",
	"Hour Ending",
	"Original Load (kW)",
	"Optimized Load (kW)",
	"Reduction (kW)",
}

func WriteTimeseriesCSV(path string, ts Timeseries) error {
	for _, c := range ts.Columns {
		if len(c.Values) != len(ts.Index) {
			return fmt.Errorf("column %q has %d values, index has %d", c.Name, len(c.Values), len(ts.Index))
		}
	}
	return writeCSV(path, func(w *csv.Writer) error {
		header := []string{"Start Datetime (hb)"}
		for _, c := range ts.Columns {
			header = append(header, c.Name)
		}
		if err := w.Write(header); err != nil {
			return err
		}
		for i, t := range ts.Index {
			row := []string{fmtTime(t)}
			for _, c := range ts.Columns {
				row = append(row, fmtFloat(c.Values[i]))
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func WriteDrillDownCSV(path string, rows []cp.DrillDownRow) error {
	return writeCSV(path, func(w *csv.Writer) error {
		if err := w.Write(DrillDownHeader); err != nil {
			return err
		}
		for _, r := range rows {
			rec := []string{
				r.Label,
				r.Date.String(),
				strconv.Itoa(r.HourEnding),
				fmtFloat2(r.OriginalLoad),
				fmtFloat2(r.OptimizedLoad),
				fmtFloat2(r.Reduction),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func WriteProformaCSV(path string, p Proforma) error {
	return writeCSV(path, func(w *csv.Writer) error {
		header := []string{"Year"}
		for _, c := range p.Columns {
			header = append(header, c.Name)
		}
		if err := w.Write(header); err != nil {
			return err
		}
		for i, y := range p.Years {
			row := []string{strconv.Itoa(y)}
			for _, c := range p.Columns {
				row = append(row, fmtFloat2(c.Values[i]))
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeCSV(path string, fill func(w *csv.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := fill(w); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

func fmtFloat2(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
