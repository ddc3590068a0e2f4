// Package registry is a read-only table of historical coincident-peak hours
// per year and utility. It is a reference for writing cp_dates config strings
// and is never consulted during optimization.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"cp-valuation/internal/cp"
)

// ErrNoData is returned when the table has no entry for a year or utility.
var ErrNoData = errors.New("no cp data")

// ErrNotUtility is returned when a system-wide calendar is passed where a
// distribution utility is expected.
var ErrNotUtility = errors.New("not a distribution utility")

// Utility identifies a calendar within a year.
type Utility string

const (
	PJM     Utility = "pjm"
	PSEG    Utility = "pseg"
	JCPL    Utility = "jcpl"
	JCPL5CP Utility = "jcpl_5cp"
)

func ev(y int, m time.Month, d, he int) cp.Event {
	return cp.Event{Date: cp.Date{Year: y, Month: m, Day: d}, HourEnding: he}
}

var calendar = map[int]map[Utility][]cp.Event{
	2024: {
		PJM: {
			ev(2024, time.July, 16, 18),
			ev(2024, time.July, 15, 18),
			ev(2024, time.June, 21, 18),
			ev(2024, time.August, 1, 18),
			ev(2024, time.August, 28, 18),
		},
		PSEG: {ev(2024, time.July, 16, 18)},
		JCPL: {ev(2024, time.July, 16, 18)},
		JCPL5CP: {
			ev(2024, time.July, 9, 18),
			ev(2024, time.July, 10, 18),
			ev(2024, time.July, 15, 19),
			ev(2024, time.July, 16, 18),
			ev(2024, time.August, 1, 19),
		},
	},
	2025: {
		PJM: {
			ev(2025, time.June, 23, 18),
			ev(2025, time.June, 24, 18),
			ev(2025, time.June, 25, 15),
			ev(2025, time.July, 28, 18),
			ev(2025, time.July, 29, 18),
		},
		PSEG: {ev(2025, time.June, 24, 19)},
		JCPL: {ev(2025, time.June, 24, 18)},
	},
}

// Years lists the years with calendar data, ascending.
func Years() []int {
	out := make([]int, 0, len(calendar))
	for y := range calendar {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}

// Utilities lists the utilities with data in year, sorted.
func Utilities(year int) ([]Utility, error) {
	byUtil, ok := calendar[year]
	if !ok {
		return nil, fmt.Errorf("year %d: %w", year, ErrNoData)
	}
	out := make([]Utility, 0, len(byUtil))
	for u := range byUtil {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// Lookup returns the events for one utility in year, sorted by date and hour.
// It never substitutes another year's data.
func Lookup(year int, utility Utility) ([]cp.Event, error) {
	byUtil, ok := calendar[year]
	if !ok {
		return nil, fmt.Errorf("year %d: %w", year, ErrNoData)
	}
	events, ok := byUtil[Utility(strings.ToLower(string(utility)))]
	if !ok {
		return nil, fmt.Errorf("%s in %d: %w", utility, year, ErrNoData)
	}
	return sorted(events), nil
}

// IsUtility reports whether u names a distribution utility rather than a
// system-wide calendar such as pjm or jcpl_5cp.
func IsUtility(u Utility) bool {
	switch Utility(strings.ToLower(string(u))) {
	case PJM, JCPL5CP:
		return false
	}
	return true
}

// CPs returns the PJM system peaks and the utility's own peaks for year.
// utility must be a distribution utility.
func CPs(year int, utility Utility) (system, local []cp.Event, err error) {
	if !IsUtility(utility) {
		return nil, nil, fmt.Errorf("%s: %w", utility, ErrNotUtility)
	}
	system, err = Lookup(year, PJM)
	if err != nil {
		return nil, nil, err
	}
	local, err = Lookup(year, utility)
	if err != nil {
		return nil, nil, err
	}
	return system, local, nil
}

// AllCPs returns the union of the PJM and utility peaks for year.
func AllCPs(year int, utility Utility) ([]cp.Event, error) {
	system, local, err := CPs(year, utility)
	if err != nil {
		return nil, err
	}
	seen := map[cp.Event]bool{}
	var out []cp.Event
	for _, e := range append(system, local...) {
		if !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	return sorted(out), nil
}

// DatesString renders the utility's events for year as a cp_dates value.
func DatesString(year int, utility Utility) (string, error) {
	events, err := Lookup(year, utility)
	if err != nil {
		return "", err
	}
	return cp.FormatEvents(events), nil
}

func sorted(events []cp.Event) []cp.Event {
	out := append([]cp.Event(nil), events...)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Date != b.Date {
			return a.Date.String() < b.Date.String()
		}
		return a.HourEnding < b.HourEnding
	})
	return out
}
