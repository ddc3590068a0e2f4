package cp

import (
	"errors"
	"sort"
	"time"

	"cp-valuation/internal/timeseries"
)

// GrowDropData makes the indicator cover exactly years.
//
// Years with no existing data get a full-year block of zeros at step
// resolution: CP dates are not known for unforecast years, so no event is
// assumed there. YearlyAvoided still grows dollars into those years, so the
// optimizer will not discharge for CP in them while the proforma reports
// savings. That asymmetry is a known approximation and is kept as is.
//
// Years present but not requested are dropped. The final argument is the
// scenario load growth, accepted for parity with other value streams; it does
// not affect the indicator.
func (in *Instance) GrowDropData(years []int, step time.Duration, _ float64) error {
	if len(years) == 0 {
		return errors.New("at least one year is required")
	}
	if step <= 0 {
		step = in.step
	}

	loc := time.UTC
	if len(in.indicator.Index) > 0 {
		loc = in.indicator.Index[0].Location()
	}

	have := map[int]bool{}
	for _, y := range in.indicator.Years() {
		have[y] = true
	}
	keep := map[int]bool{}
	for _, y := range years {
		keep[y] = true
	}

	var next Series
	for i, t := range in.indicator.Index {
		if keep[t.Year()] {
			next.Index = append(next.Index, t)
			next.Values = append(next.Values, in.indicator.Values[i])
		}
	}
	for _, y := range timeseries.UniqueYears(years) {
		if have[y] {
			continue
		}
		block := timeseries.YearIndex(y, step, loc)
		next.Index = append(next.Index, block...)
		next.Values = append(next.Values, make([]float64, len(block))...)
	}
	sortSeries(&next)

	in.indicator = next
	return nil
}

func sortSeries(s *Series) {
	sort.Sort(byTime{s})
}

type byTime struct{ s *Series }

func (b byTime) Len() int           { return len(b.s.Index) }
func (b byTime) Less(i, j int) bool { return b.s.Index[i].Before(b.s.Index[j]) }
func (b byTime) Swap(i, j int) {
	b.s.Index[i], b.s.Index[j] = b.s.Index[j], b.s.Index[i]
	b.s.Values[i], b.s.Values[j] = b.s.Values[j], b.s.Values[i]
}
