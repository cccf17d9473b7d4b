package ledger

import "fmt"

// WorkDuration is a signed hours/minutes pair. A negative value is
// carried by a negative Hours with positive Minutes, or, when there is
// less than an hour, by a zero Hours and negative Minutes.
type WorkDuration struct {
	Hours   int
	Minutes int
}

// TotalMinutes converts d back to a signed number of minutes.
func (d WorkDuration) TotalMinutes() int {
	switch {
	case d.Hours < 0:
		return d.Hours*60 - d.Minutes
	case d.Hours == 0 && d.Minutes < 0:
		return d.Minutes
	default:
		return d.Hours*60 + d.Minutes
	}
}

// String renders d as h:mm, e.g. 7:05, 0:-15 or -1:15.
func (d WorkDuration) String() string {
	return fmt.Sprintf("%d:%02d", d.Hours, d.Minutes)
}

// fromMinutes applies the display sign rule: zero renders as 0:00, a
// negative value under an hour puts the sign on the minutes, anything
// else on the hours.
func fromMinutes(m int) WorkDuration {
	abs := m
	if abs < 0 {
		abs = -abs
	}
	hours, minutes := abs/60, abs%60

	switch {
	case m > 0:
		return WorkDuration{Hours: hours, Minutes: minutes}
	case hours == 0:
		return WorkDuration{Hours: 0, Minutes: -minutes}
	default:
		return WorkDuration{Hours: -hours, Minutes: minutes}
	}
}

// Summary is the derived state of the ledger: time worked per day, the
// weekly total and what is left to reach the weekly target.
type Summary struct {
	Days  map[Day]WorkDuration
	Total WorkDuration
	Left  WorkDuration
}

// TargetReached reports whether the week's total meets the target. It
// reads Total rather than Left, since a zeroed summary has Left at 0:00.
func (s Summary) TargetReached() bool {
	return s.Total.TotalMinutes() >= WeeklyTargetMinutes
}

func (s Summary) clone() Summary {
	days := make(map[Day]WorkDuration, len(s.Days))
	for k, v := range s.Days {
		days[k] = v
	}
	s.Days = days
	return s
}

func zeroSummary() Summary {
	days := make(map[Day]WorkDuration, len(Days))
	for _, d := range Days {
		days[d] = WorkDuration{}
	}
	return Summary{Days: days}
}

// Process recomputes the derived durations from the committed entries.
// It never touches the entries and is safe to call repeatedly.
func (l *Ledger) Process() {
	sum := zeroSummary()
	totalMinutes := 0

	for _, d := range Days {
		worked, ok := dayDuration(l.arrivals[d], l.departures[d])
		if !ok {
			continue
		}
		sum.Days[d] = worked
		totalMinutes += worked.Hours*60 + worked.Minutes
	}

	sum.Total = fromMinutes(totalMinutes)
	sum.Left = fromMinutes(WeeklyTargetMinutes - totalMinutes)
	l.summary = sum
}

// dayDuration returns departure - arrival - break. ok is false when the
// result is negative, in which case the day counts as zero.
func dayDuration(arrival, departure TimeOfDay) (WorkDuration, bool) {
	hours := departure.Hours - arrival.Hours
	minutes := departure.Minutes - arrival.Minutes - BreakMinutes

	for minutes < 0 {
		minutes += 60
		hours--
	}
	if hours < 0 {
		return WorkDuration{}, false
	}
	return WorkDuration{Hours: hours, Minutes: minutes}, true
}
