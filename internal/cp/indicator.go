package cp

import "time"

// BuildIndicator marks every step of index that falls inside a billed CP hour.
//
// An event marks all sub-hourly steps of its clock hour, not a single instant.
// Events outside the index contribute nothing, and events sharing a step set it
// to 1.0 once.
func BuildIndicator(index []time.Time, events []Event) Series {
	ind := Series{
		Index:  append([]time.Time(nil), index...),
		Values: make([]float64, len(index)),
	}
	if len(events) == 0 {
		return ind
	}

	byDate := make(map[Date][]int, len(events))
	for _, ev := range events {
		byDate[ev.Date] = append(byDate[ev.Date], ev.HourBeginning())
	}
	for i, t := range index {
		hours, ok := byDate[DateOf(t)]
		if !ok {
			continue
		}
		for _, hb := range hours {
			if t.Hour() == hb {
				ind.Values[i] = 1.0
				break
			}
		}
	}
	return ind
}
