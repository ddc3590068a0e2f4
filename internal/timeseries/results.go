package timeseries

import (
	"errors"
	"fmt"
	"time"
)

// Results is the realized output of one optimization run, in kW per step.
type Results struct {
	Index        []time.Time
	OriginalLoad []float64
	NetLoad      []float64

	pos map[time.Time]int
}

// NewResults validates the columns and indexes timestamps for lookup.
func NewResults(index []time.Time, original, net []float64) (*Results, error) {
	r := &Results{Index: index, OriginalLoad: original, NetLoad: net}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	r.pos = make(map[time.Time]int, len(index))
	for i, ts := range index {
		r.pos[ts.UTC()] = i
	}
	return r, nil
}

func (r *Results) Validate() error {
	if r == nil {
		return errors.New("results are nil")
	}
	if len(r.OriginalLoad) != len(r.Index) || len(r.NetLoad) != len(r.Index) {
		return fmt.Errorf("results columns disagree: %d timestamps, %d original, %d net",
			len(r.Index), len(r.OriginalLoad), len(r.NetLoad))
	}
	return nil
}

// Lookup returns the row position for t, if present. It never mutates r, so
// one Results may be read from many goroutines. Results not built by
// NewResults fall back to a linear scan.
func (r *Results) Lookup(t time.Time) (int, bool) {
	if r.pos == nil {
		for i, ts := range r.Index {
			if ts.Equal(t) {
				return i, true
			}
		}
		return 0, false
	}
	i, ok := r.pos[t.UTC()]
	return i, ok
}
