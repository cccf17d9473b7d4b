package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/christopherklint97/hebdo/internal/ledger"
)

type column int

const (
	arrivalHours column = iota
	arrivalMinutes
	departureHours
	departureMinutes
	columnCount
)

// dayInputs holds the four text fields of one day row.
type dayInputs [columnCount]textinput.Model

func newTimeInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "00"
	ti.CharLimit = 2
	ti.Width = 2
	return ti
}

func newDayInputs(arrival, departure ledger.RawTime) dayInputs {
	var row dayInputs
	for c := range row {
		row[c] = newTimeInput()
	}
	row.set(arrival, departure)
	return row
}

func (r *dayInputs) set(arrival, departure ledger.RawTime) {
	r[arrivalHours].SetValue(arrival.Hours)
	r[arrivalMinutes].SetValue(arrival.Minutes)
	r[departureHours].SetValue(departure.Hours)
	r[departureMinutes].SetValue(departure.Minutes)
}

func (r *dayInputs) arrival() ledger.RawTime {
	return ledger.RawTime{Hours: r[arrivalHours].Value(), Minutes: r[arrivalMinutes].Value()}
}

func (r *dayInputs) departure() ledger.RawTime {
	return ledger.RawTime{Hours: r[departureHours].Value(), Minutes: r[departureMinutes].Value()}
}

func (r *dayInputs) update(c column, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	r[c], cmd = r[c].Update(msg)
	return cmd
}
