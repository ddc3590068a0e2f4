package cp

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar day with no time-of-day or location attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Event is a single billed CP hour.
// HourEnding N covers the half-open interval [N-1:00, N:00) on Date.
type Event struct {
	Date       Date
	HourEnding int
}

// HourBeginning is the clock hour (0..23) the event's billing interval starts in.
func (e Event) HourBeginning() int {
	return e.HourEnding - 1
}

// Matches reports whether t falls inside the event's billed clock hour.
func (e Event) Matches(t time.Time) bool {
	return DateOf(t) == e.Date && t.Hour() == e.HourBeginning()
}

func (e Event) String() string {
	return fmt.Sprintf("%s:%d", e.Date, e.HourEnding)
}

// FormatError is returned when an event-date entry cannot be parsed.
type FormatError struct {
	Entry  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid cp date entry %q: %s", e.Entry, e.Reason)
}

// ParseEvents parses a comma-separated list of "YYYY-MM-DD:HE" entries.
// Whitespace around entries is stripped and empty entries are skipped.
// The returned events keep input order.
func ParseEvents(s string) ([]Event, error) {
	var out []Event
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		ev, err := parseEntry(entry)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

func parseEntry(entry string) (Event, error) {
	parts := strings.Split(entry, ":")
	if len(parts) != 2 {
		return Event{}, &FormatError{Entry: entry, Reason: "expected YYYY-MM-DD:HE"}
	}
	datePart := strings.TrimSpace(parts[0])
	hePart := strings.TrimSpace(parts[1])

	d, err := time.Parse("2006-01-02", datePart)
	if err != nil {
		return Event{}, &FormatError{Entry: entry, Reason: "malformed date"}
	}
	he, err := strconv.Atoi(hePart)
	if err != nil {
		return Event{}, &FormatError{Entry: entry, Reason: "hour ending is not an integer"}
	}
	if he < 1 || he > 24 {
		return Event{}, &FormatError{Entry: entry, Reason: "hour ending must be in 1..24"}
	}
	return Event{Date: DateOf(d), HourEnding: he}, nil
}

// FormatEvents renders events back into the comma-separated config form.
func FormatEvents(events []Event) string {
	parts := make([]string, 0, len(events))
	for _, ev := range events {
		parts = append(parts, ev.String())
	}
	return strings.Join(parts, ",")
}
