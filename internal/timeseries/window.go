package timeseries

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Window is one optimization window: a contiguous mask over the full index.
type Window struct {
	Label string
	Mask  []bool
}

// Len is the number of steps inside the window.
func (w Window) Len() int {
	n := 0
	for _, ok := range w.Mask {
		if ok {
			n++
		}
	}
	return n
}

// Windows partitions index into rolling optimization windows.
// kind is "year", "month", or a positive number of hours.
func Windows(index []time.Time, kind string) ([]Window, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	var key func(t time.Time) string
	switch kind {
	case "year":
		key = func(t time.Time) string { return strconv.Itoa(t.Year()) }
	case "", "month":
		key = func(t time.Time) string { return t.Format("2006-01") }
	default:
		hours, err := strconv.Atoi(kind)
		if err != nil || hours <= 0 {
			return nil, fmt.Errorf("invalid window %q: expected year, month or a positive number of hours", kind)
		}
		if len(index) == 0 {
			return nil, nil
		}
		origin := index[0]
		size := time.Duration(hours) * time.Hour
		key = func(t time.Time) string {
			return strconv.Itoa(int(t.Sub(origin) / size))
		}
	}

	var out []Window
	last := ""
	for i, t := range index {
		k := key(t)
		if len(out) == 0 || k != last {
			out = append(out, Window{Label: k, Mask: make([]bool, len(index))})
			last = k
		}
		out[len(out)-1].Mask[i] = true
	}
	return out, nil
}
