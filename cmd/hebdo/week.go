package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/christopherklint97/hebdo/internal/ledger"
)

// parseClock splits "8:30" into raw hours and minutes. The digits are
// checked by the ledger, not here.
func parseClock(s string) (ledger.RawTime, error) {
	h, m, ok := strings.Cut(s, ":")
	if !ok || strings.Contains(m, ":") {
		return ledger.RawTime{}, fmt.Errorf("invalid time %q (expected HH:MM)", s)
	}
	return ledger.RawTime{Hours: h, Minutes: m}, nil
}

func printWeek(w io.Writer, l *ledger.Ledger) {
	arrivals := l.Arrivals()
	departures := l.Departures()
	sum := l.Summary()

	fmt.Fprintf(w, "%-10s  %-7s  %-7s  %s\n", "", "Arrivée", "Départ", "Travail")
	for _, d := range ledger.Days {
		a, dep := arrivals[d], departures[d]
		fmt.Fprintf(w, "%-10s  %2d:%02d    %2d:%02d    %7s\n",
			string(d)+":", a.Hours, a.Minutes, dep.Hours, dep.Minutes, sum.Days[d])
	}
	fmt.Fprintf(w, "\n%-33s %7s\n", "Total", sum.Total)
	fmt.Fprintf(w, "%-33s %7s\n", "Temps restant", sum.Left)
}
