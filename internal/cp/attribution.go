package cp

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"cp-valuation/internal/timeseries"
)

// DrillDownRow is the realized load at one CP event.
type DrillDownRow struct {
	Label         string
	Date          Date
	HourEnding    int
	OriginalLoad  float64
	OptimizedLoad float64
	Reduction     float64
}

// YearlyCharge is the avoided CP charge for one year. Computed is false for
// years filled from growth or defaulted to zero.
type YearlyCharge struct {
	Year     int
	Dollars  float64
	Computed bool
}

// DrillDown reports, per event, the mean original and optimized load over the
// event's clock hour. Events with no matching result rows are omitted.
func (in *Instance) DrillDown(res *timeseries.Results) []DrillDownRow {
	if res == nil {
		return nil
	}
	var rows []DrillDownRow
	for _, ev := range in.events {
		var orig, opt []float64
		for i, t := range res.Index {
			if ev.Matches(t) {
				orig = append(orig, res.OriginalLoad[i])
				opt = append(opt, res.NetLoad[i])
			}
		}
		if len(orig) == 0 {
			continue
		}
		origAvg := stat.Mean(orig, nil)
		optAvg := stat.Mean(opt, nil)
		rows = append(rows, DrillDownRow{
			Label:         in.label,
			Date:          ev.Date,
			HourEnding:    ev.HourEnding,
			OriginalLoad:  round2(origAvg),
			OptimizedLoad: round2(optAvg),
			Reduction:     round2(origAvg - optAvg),
		})
	}
	return rows
}

// YearlyAvoided returns one entry per year from the first optimization year
// through lastYear.
//
// A year whose indicator has marked steps is computed as
// (mean original − mean optimized over those steps) * monthlyRate * 12.
// Years after the last computed year compound the last computed value by
// GrowthPercent per year whether or not they have CP events; see GrowDropData
// for the matching zero-filled indicator. Other years report 0.
func (in *Instance) YearlyAvoided(res *timeseries.Results, optYears []int, lastYear int) []YearlyCharge {
	years := timeseries.UniqueYears(optYears)
	if len(years) == 0 {
		return nil
	}
	if lastYear < years[len(years)-1] {
		lastYear = years[len(years)-1]
	}

	computed := map[int]float64{}
	lastComputed := 0
	for _, y := range years {
		v, ok := in.avoidedForYear(res, y)
		if !ok {
			continue
		}
		computed[y] = v
		if y > lastComputed {
			lastComputed = y
		}
	}

	growth := in.growthPercent / 100
	out := make([]YearlyCharge, 0, lastYear-years[0]+1)
	for y := years[0]; y <= lastYear; y++ {
		if v, ok := computed[y]; ok {
			out = append(out, YearlyCharge{Year: y, Dollars: v, Computed: true})
			continue
		}
		if lastComputed != 0 && y > lastComputed {
			base := computed[lastComputed]
			out = append(out, YearlyCharge{Year: y, Dollars: base * math.Pow(1+growth, float64(y-lastComputed))})
			continue
		}
		out = append(out, YearlyCharge{Year: y})
	}
	return out
}

func (in *Instance) avoidedForYear(res *timeseries.Results, year int) (float64, bool) {
	if res == nil {
		return 0, false
	}
	ind := in.indicator.Year(year)
	var orig, opt []float64
	for i, t := range ind.Index {
		if ind.Values[i] <= 0 {
			continue
		}
		pos, ok := res.Lookup(t)
		if !ok {
			continue
		}
		orig = append(orig, res.OriginalLoad[pos])
		opt = append(opt, res.NetLoad[pos])
	}
	if len(orig) == 0 {
		return 0, false
	}
	return (stat.Mean(orig, nil) - stat.Mean(opt, nil)) * in.monthlyRate * 12.0, true
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
