package ledger

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	BreakMinutes        = 60
	WeeklyTargetMinutes = 2310 // 38h30

	maxHours   = 24
	maxMinutes = 60
)

// Day is one of the five fixed weekday labels. The literal values are
// both the display text and the keys of the persisted format.
type Day string

const (
	Monday    Day = "Lundi"
	Tuesday   Day = "Mardi"
	Wednesday Day = "Mercredi"
	Thursday  Day = "Jeudi"
	Friday    Day = "Vendredi"
)

// Days lists the working days in display order.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday}

// ParseDay matches s against the day labels, ignoring case.
func ParseDay(s string) (Day, bool) {
	for _, d := range Days {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, true
		}
	}
	return "", false
}

type TimeOfDay struct {
	Hours   int
	Minutes int
}

func (t TimeOfDay) inRange() bool {
	return t.Hours >= 0 && t.Hours <= maxHours && t.Minutes >= 0 && t.Minutes <= maxMinutes
}

// RawTime is an hours/minutes pair as typed by the user.
type RawTime struct {
	Hours   string
	Minutes string
}

type Entry struct {
	Arrival   TimeOfDay
	Departure TimeOfDay
}

// Record is the persisted part of the ledger: the last committed
// arrival and departure of each day.
type Record map[Day]Entry

// ValidationError lists the days whose raw input was rejected.
type ValidationError struct {
	Days []Day
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Days))
	for i, d := range e.Days {
		names[i] = string(d)
	}
	return fmt.Sprintf("invalid time values for %s", strings.Join(names, ", "))
}

// Has reports whether day is among the rejected days.
func (e *ValidationError) Has(day Day) bool {
	for _, d := range e.Days {
		if d == day {
			return true
		}
	}
	return false
}

// Ledger holds the week's entries and the durations derived from them.
// It is not safe for concurrent use.
type Ledger struct {
	arrivals   map[Day]TimeOfDay
	departures map[Day]TimeOfDay
	summary    Summary
}

func New() *Ledger {
	l := &Ledger{}
	l.Reset()
	return l
}

// Reset zeroes every arrival, departure and derived duration.
func (l *Ledger) Reset() {
	l.arrivals = zeroTimes()
	l.departures = zeroTimes()
	l.summary = zeroSummary()
}

func (l *Ledger) SetArrivals(values map[Day]RawTime) error {
	times, err := ParseTimes(values)
	if err != nil {
		return err
	}
	l.arrivals = times
	return nil
}

func (l *Ledger) SetDepartures(values map[Day]RawTime) error {
	times, err := ParseTimes(values)
	if err != nil {
		return err
	}
	l.departures = times
	return nil
}

func (l *Ledger) Arrivals() map[Day]TimeOfDay {
	return copyTimes(l.arrivals)
}

func (l *Ledger) Departures() map[Day]TimeOfDay {
	return copyTimes(l.departures)
}

// Summary returns the durations computed by the last Process call.
func (l *Ledger) Summary() Summary {
	return l.summary.clone()
}

// ExportState returns the committed entries of all five days.
func (l *Ledger) ExportState() Record {
	rec := make(Record, len(Days))
	for _, d := range Days {
		rec[d] = Entry{Arrival: l.arrivals[d], Departure: l.departures[d]}
	}
	return rec
}

// ImportState adopts the entries found in rec. Days missing from rec, or
// holding out-of-range values, are zeroed. A nil record leaves a fresh
// ledger. Derived durations are cleared; call Process to recompute them.
func (l *Ledger) ImportState(rec Record) {
	l.Reset()
	for _, d := range Days {
		e, ok := rec[d]
		if !ok || !e.Arrival.inRange() || !e.Departure.inRange() {
			continue
		}
		l.arrivals[d] = e.Arrival
		l.departures[d] = e.Departure
	}
}

// ParseTimes validates raw input for the whole week. Either every day
// parses and the full map is returned, or a *ValidationError names each
// day that did not.
func ParseTimes(values map[Day]RawTime) (map[Day]TimeOfDay, error) {
	times := make(map[Day]TimeOfDay, len(Days))
	var invalid []Day

	for _, d := range Days {
		raw, ok := values[d]
		if !ok {
			invalid = append(invalid, d)
			continue
		}
		t, ok := parseTime(raw)
		if !ok {
			invalid = append(invalid, d)
			continue
		}
		times[d] = t
	}

	var unknown []Day
	for d := range values {
		if !isFixedDay(d) {
			unknown = append(unknown, d)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	invalid = append(invalid, unknown...)

	if len(invalid) > 0 {
		return nil, &ValidationError{Days: invalid}
	}
	return times, nil
}

func parseTime(raw RawTime) (TimeOfDay, bool) {
	if !isDigits(raw.Hours) || !isDigits(raw.Minutes) {
		return TimeOfDay{}, false
	}
	h, err := strconv.Atoi(raw.Hours)
	if err != nil {
		return TimeOfDay{}, false
	}
	m, err := strconv.Atoi(raw.Minutes)
	if err != nil {
		return TimeOfDay{}, false
	}
	t := TimeOfDay{Hours: h, Minutes: m}
	return t, t.inRange()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isFixedDay(d Day) bool {
	for _, fd := range Days {
		if d == fd {
			return true
		}
	}
	return false
}

func zeroTimes() map[Day]TimeOfDay {
	m := make(map[Day]TimeOfDay, len(Days))
	for _, d := range Days {
		m[d] = TimeOfDay{}
	}
	return m
}

func copyTimes(src map[Day]TimeOfDay) map[Day]TimeOfDay {
	dst := make(map[Day]TimeOfDay, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
