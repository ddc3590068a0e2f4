// Package timeseries builds simulation time indexes and optimization windows.
package timeseries

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// YearIndex returns every step of year at the given resolution, starting at
// Jan 1 00:00 and excluding Jan 1 of the following year.
func YearIndex(year int, step time.Duration, loc *time.Location) []time.Time {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	end := time.Date(year+1, time.January, 1, 0, 0, 0, 0, loc)
	n := int(end.Sub(start) / step)
	out := make([]time.Time, 0, n)
	for t := start; t.Before(end); t = t.Add(step) {
		out = append(out, t)
	}
	return out
}

// Index concatenates full-year indexes for years, ascending and de-duplicated.
func Index(years []int, step time.Duration, loc *time.Location) ([]time.Time, error) {
	if step < MinStep {
		return nil, fmt.Errorf("step must be at least %s", MinStep)
	}
	if len(years) == 0 {
		return nil, errors.New("at least one year is required")
	}
	ys := UniqueYears(years)
	if len(ys) > MaxYears {
		return nil, fmt.Errorf("%d years requested, at most %d supported", len(ys), MaxYears)
	}
	var out []time.Time
	for _, y := range ys {
		out = append(out, YearIndex(y, step, loc)...)
	}
	return out, nil
}

// UniqueYears returns years sorted ascending without duplicates.
func UniqueYears(years []int) []int {
	seen := map[int]bool{}
	out := make([]int, 0, len(years))
	for _, y := range years {
		if !seen[y] {
			seen[y] = true
			out = append(out, y)
		}
	}
	sort.Ints(out)
	return out
}

// Years returns the distinct calendar years present in index, ascending.
func Years(index []time.Time) []int {
	ys := make([]int, 0, 1)
	for _, t := range index {
		ys = append(ys, t.Year())
	}
	return UniqueYears(ys)
}

// StepHours is the step duration in hours, e.g. 0.25 for 15-minute data.
func StepHours(step time.Duration) float64 {
	return step.Hours()
}

// MinStep is the finest supported resolution.
const MinStep = time.Minute

// MaxYears bounds the number of distinct years in one index.
const MaxYears = 50

// ParseStep parses a frequency such as "1h", "15m" or "30min".
func ParseStep(s string) (time.Duration, error) {
	switch s {
	case "", "h", "H", "1H":
		return time.Hour, nil
	case "15min", "15T":
		return 15 * time.Minute, nil
	case "30min", "30T":
		return 30 * time.Minute, nil
	case "5min", "5T":
		return 5 * time.Minute, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < MinStep {
		return 0, fmt.Errorf("frequency must be at least %s", MinStep)
	}
	if time.Hour%d != 0 {
		return 0, errors.New("frequency must evenly divide one hour")
	}
	return d, nil
}
