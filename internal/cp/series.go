package cp

import (
	"sort"
	"time"
)

// Series is a value per timestep aligned to an ordered time index.
type Series struct {
	Index  []time.Time
	Values []float64
}

func (s Series) Len() int { return len(s.Index) }

func (s Series) Sum() float64 {
	total := 0.0
	for _, v := range s.Values {
		total += v
	}
	return total
}

// Marked returns the number of steps with a non-zero value.
func (s Series) Marked() int {
	n := 0
	for _, v := range s.Values {
		if v > 0 {
			n++
		}
	}
	return n
}

// Years returns the distinct calendar years covered by the index, ascending.
func (s Series) Years() []int {
	seen := map[int]bool{}
	var out []int
	for _, t := range s.Index {
		y := t.Year()
		if !seen[y] {
			seen[y] = true
			out = append(out, y)
		}
	}
	sort.Ints(out)
	return out
}

// Year returns the sub-series whose timestamps fall in year.
func (s Series) Year(year int) Series {
	var out Series
	for i, t := range s.Index {
		if t.Year() == year {
			out.Index = append(out.Index, t)
			out.Values = append(out.Values, s.Values[i])
		}
	}
	return out
}

// Restrict returns the values at positions where mask is true.
// The mask must have the same length as the series.
func (s Series) Restrict(mask []bool) []float64 {
	out := make([]float64, 0, len(mask))
	for i, ok := range mask {
		if ok {
			out = append(out, s.Values[i])
		}
	}
	return out
}

// Clone returns a deep copy.
func (s Series) Clone() Series {
	return Series{
		Index:  append([]time.Time(nil), s.Index...),
		Values: append([]float64(nil), s.Values...),
	}
}
