package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cp-valuation/internal/timeseries"
)

// Column names of the dispatch engine's timeseries export.
const (
	ColOriginalLoad = "Total Original Load (kW)"
	ColTotalLoad    = "Total Load (kW)"
	ColNetLoad      = "Net Load (kW)"
)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"1/2/2006 15:04",
}

// LoadResults reads a results file, choosing the decoder by extension.
func LoadResults(path string, loc *time.Location) (*timeseries.Results, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadResultsJSON(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadResultsCSV(f, loc)
}

// ReadResultsCSV reads a timeseries export whose first column is the
// timestamp. The original load comes from "Total Original Load (kW)" when
// present, otherwise "Total Load (kW)". Timestamps without an offset are
// interpreted in loc.
func ReadResultsCSV(r io.Reader, loc *time.Location) (*timeseries.Results, error) {
	if loc == nil {
		loc = time.UTC
	}
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read results header: %w", err)
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	origIdx, ok := col[ColOriginalLoad]
	if !ok {
		origIdx, ok = col[ColTotalLoad]
	}
	if !ok {
		return nil, fmt.Errorf("results missing %q or %q column", ColOriginalLoad, ColTotalLoad)
	}
	netIdx, ok := col[ColNetLoad]
	if !ok {
		return nil, fmt.Errorf("results missing %q column", ColNetLoad)
	}

	var (
		index     []time.Time
		orig, net []float64
	)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		t, err := parseTime(rec[0], loc)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		o, err := strconv.ParseFloat(strings.TrimSpace(rec[origIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: original load: %w", line, err)
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(rec[netIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: net load: %w", line, err)
		}
		index = append(index, t)
		orig = append(orig, o)
		net = append(net, n)
	}
	return timeseries.NewResults(index, orig, net)
}

func parseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
