// Package report writes CP value-stream outputs as CSV and XLSX artifacts.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Column is a named series of values aligned to some index.
type Column struct {
	Name   string
	Values []float64
}

// Timeseries is the per-timestep report: one indicator column per instance.
type Timeseries struct {
	Index   []time.Time
	Columns []Column
}

// Proforma is the yearly financial table: one row per year, one column per instance.
type Proforma struct {
	Years   []int
	Columns []Column
}

// Value returns the proforma cell for column name in year.
func (p Proforma) Value(name string, year int) (float64, bool) {
	row := -1
	for i, y := range p.Years {
		if y == year {
			row = i
			break
		}
	}
	if row < 0 {
		return 0, false
	}
	for _, c := range p.Columns {
		if c.Name == name {
			return c.Values[row], true
		}
	}
	return 0, false
}

// RemoveStaleDetails deletes drill-down files left in dir by a previous run.
func RemoveStaleDetails(dir, prefix string) error {
	matches, err := filepath.Glob(filepath.Join(dir, prefix+"*.csv"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", m, err)
		}
	}
	return nil
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
