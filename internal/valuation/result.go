package valuation

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"cp-valuation/internal/cp"
	"cp-valuation/internal/report"
	"cp-valuation/internal/timeseries"
)

// Result is everything the CP value streams contribute to the run's outputs.
type Result struct {
	Timeseries report.Timeseries
	// DrillDown is keyed by artifact name (cp_event_detail[_<id>]).
	DrillDown map[string][]cp.DrillDownRow
	Proforma  report.Proforma
}

// Report turns realized optimizer output into the timeseries, drill-down
// and proforma reports.
func (e *Engine) Report(res *timeseries.Results) (*Result, error) {
	if err := res.Validate(); err != nil {
		return nil, err
	}
	local, err := e.localize(res)
	if err != nil {
		return nil, err
	}

	out := &Result{
		Timeseries: report.Timeseries{Index: e.index},
		DrillDown:  map[string][]cp.DrillDownRow{},
	}

	optYears := e.OptYears()
	endYear := e.endYear()
	for y := optYears[0]; y <= endYear; y++ {
		out.Proforma.Years = append(out.Proforma.Years, y)
	}

	for _, in := range e.instances {
		ind := in.Indicator()
		out.Timeseries.Columns = append(out.Timeseries.Columns, report.Column{
			Name:   in.IndicatorColumn(),
			Values: ind.Values,
		})

		if rows := in.DrillDown(local); len(rows) > 0 {
			out.DrillDown[in.DetailArtifact()] = rows
		}

		charges := in.YearlyAvoided(local, optYears, endYear)
		col := report.Column{Name: in.ProformaColumn(), Values: make([]float64, len(out.Proforma.Years))}
		for _, c := range charges {
			col.Values[c.Year-optYears[0]] = c.Dollars
		}
		out.Proforma.Columns = append(out.Proforma.Columns, col)

		e.log.WithFields(map[string]interface{}{
			"value_stream": in.Name(),
			"events":       len(out.DrillDown[in.DetailArtifact()]),
		}).Debug("cp attribution computed")
	}
	return out, nil
}

// localize re-expresses result timestamps in the scenario location so
// calendar-date matching agrees with the indicator.
func (e *Engine) localize(res *timeseries.Results) (*timeseries.Results, error) {
	index := make([]time.Time, len(res.Index))
	for i, t := range res.Index {
		index[i] = t.In(e.loc)
	}
	return timeseries.NewResults(index, res.OriginalLoad, res.NetLoad)
}

// Write stores every artifact under dir, replacing drill-down files from a
// previous run.
func (r *Result) Write(dir string, xlsx bool) error {
	if err := report.RemoveStaleDetails(dir, cp.DetailArtifactPrefix()); err != nil {
		return err
	}
	if len(r.Timeseries.Columns) > 0 {
		if err := report.WriteTimeseriesCSV(filepath.Join(dir, "cp_timeseries.csv"), r.Timeseries); err != nil {
			return fmt.Errorf("write timeseries: %w", err)
		}
	}
	names := make([]string, 0, len(r.DrillDown))
	for name := range r.DrillDown {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := report.WriteDrillDownCSV(filepath.Join(dir, name+".csv"), r.DrillDown[name]); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	if err := report.WriteProformaCSV(filepath.Join(dir, "pro_forma.csv"), r.Proforma); err != nil {
		return fmt.Errorf("write proforma: %w", err)
	}
	if xlsx {
		if err := report.WriteProformaXLSX(filepath.Join(dir, "pro_forma.xlsx"), r.Proforma); err != nil {
			return fmt.Errorf("write proforma workbook: %w", err)
		}
	}
	return nil
}
