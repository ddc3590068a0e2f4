package data

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"cp-valuation/internal/timeseries"
)

// ResultsDocument is the JSON shape of a realized optimization run.
//
// Example:
//
//	{
//	  "rows": [
//	    {"timestamp": "2025-06-23T17:00:00Z", "original_load_kw": 1000, "net_load_kw": 800}
//	  ]
//	}
type ResultsDocument struct {
	Rows []ResultRow `json:"rows"`
}

// ResultRow is one timestep of optimizer output in kW.
type ResultRow struct {
	Timestamp      time.Time `json:"timestamp"`
	OriginalLoadKW float64   `json:"original_load_kw"`
	NetLoadKW      float64   `json:"net_load_kw"`
}

func LoadResultsJSON(path string) (*timeseries.Results, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc ResultsDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse results json: %w", err)
	}
	return doc.ToResults()
}

// ToResults converts rows into column form.
func (d ResultsDocument) ToResults() (*timeseries.Results, error) {
	index := make([]time.Time, 0, len(d.Rows))
	orig := make([]float64, 0, len(d.Rows))
	net := make([]float64, 0, len(d.Rows))
	for _, r := range d.Rows {
		index = append(index, r.Timestamp)
		orig = append(orig, r.OriginalLoadKW)
		net = append(net, r.NetLoadKW)
	}
	return timeseries.NewResults(index, orig, net)
}
