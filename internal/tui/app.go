package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/christopherklint97/hebdo/internal/ledger"
	"github.com/christopherklint97/hebdo/internal/session"
)

const invalidMsg = "Invalid value(s)"

type Result struct {
	Saved   bool
	SaveErr error
}

// clearErrorMsg hides a day's error label, unless a later validation
// has bumped the day's sequence since it was scheduled.
type clearErrorMsg struct {
	day ledger.Day
	seq int
}

// App is the Bubbletea model for the weekly time sheet.
type App struct {
	session    *session.Session
	rows       map[ledger.Day]*dayInputs
	focusDay   int
	focusCol   column
	errorDelay time.Duration

	dayErrors map[ledger.Day]string
	errSeq    map[ledger.Day]int
	summary   ledger.Summary
	status    string
	errMsg    string
	quitting  bool
	result    *Result
}

func NewApp(sess *session.Session, errorDelay time.Duration) *App {
	a := &App{
		session:    sess,
		rows:       make(map[ledger.Day]*dayInputs, len(ledger.Days)),
		errorDelay: errorDelay,
		dayErrors:  make(map[ledger.Day]string),
		errSeq:     make(map[ledger.Day]int),
		summary:    sess.Ledger().Summary(),
	}
	a.loadInputs()
	a.focused().Focus()
	return a
}

func (a *App) loadInputs() {
	l := a.session.Ledger()
	arrivals := session.RawWeek(l.Arrivals())
	departures := session.RawWeek(l.Departures())
	for _, d := range ledger.Days {
		row := newDayInputs(arrivals[d], departures[d])
		a.rows[d] = &row
	}
}

func (a *App) Init() tea.Cmd {
	return a.focused().Focus()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	case clearErrorMsg:
		if a.errSeq[msg.day] == msg.seq {
			delete(a.dayErrors, msg.day)
		}
		return a, nil
	}

	return a, a.rows[ledger.Days[a.focusDay]].update(a.focusCol, msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		if a.quitting {
			// second request after a failed save: leave without saving
			a.result = &Result{SaveErr: errors.New(a.errMsg)}
			return a, tea.Quit
		}
		a.quitting = true
		cmd := a.validate()
		return a, tea.Batch(cmd, a.save())
	case "enter":
		return a, a.validate()
	case "ctrl+s":
		cmd := a.validate()
		return a, tea.Batch(cmd, a.save())
	case "ctrl+r":
		a.reset()
		return a, nil
	case "tab", "right":
		return a, a.moveFocus(1)
	case "shift+tab", "left":
		return a, a.moveFocus(-1)
	case "down":
		return a, a.moveRow(1)
	case "up":
		return a, a.moveRow(-1)
	}

	return a, a.rows[ledger.Days[a.focusDay]].update(a.focusCol, msg)
}

// validate submits the whole form. Every pending error clear is
// cancelled first; each rejected day then gets a fresh message and its
// own clear timer.
func (a *App) validate() tea.Cmd {
	arrivals := make(map[ledger.Day]ledger.RawTime, len(ledger.Days))
	departures := make(map[ledger.Day]ledger.RawTime, len(ledger.Days))
	for _, d := range ledger.Days {
		a.errSeq[d]++
		delete(a.dayErrors, d)
		arrivals[d] = a.rows[d].arrival()
		departures[d] = a.rows[d].departure()
	}

	a.status = ""
	sum, err := a.session.Validate(arrivals, departures)
	if err == nil {
		a.summary = sum
		return nil
	}

	var verr *ledger.ValidationError
	if !errors.As(err, &verr) {
		a.errMsg = err.Error()
		return nil
	}

	var cmds []tea.Cmd
	for _, d := range ledger.Days {
		if !verr.Has(d) {
			continue
		}
		a.dayErrors[d] = invalidMsg
		cmds = append(cmds, a.scheduleClear(d))
	}
	return tea.Batch(cmds...)
}

func (a *App) scheduleClear(day ledger.Day) tea.Cmd {
	seq := a.errSeq[day]
	return tea.Tick(a.errorDelay, func(time.Time) tea.Msg {
		return clearErrorMsg{day: day, seq: seq}
	})
}

// save writes the committed week. When quitting, a failed save keeps
// the program open so the user sees the error before leaving.
func (a *App) save() tea.Cmd {
	if err := a.session.Save(); err != nil {
		a.errMsg = err.Error()
		a.status = ""
		return nil
	}

	a.errMsg = ""
	a.status = "Saved"
	if a.quitting {
		a.result = &Result{Saved: true}
		return tea.Quit
	}
	return nil
}

func (a *App) reset() {
	a.session.Reset()
	a.loadInputs()
	a.summary = a.session.Ledger().Summary()
	for _, d := range ledger.Days {
		a.errSeq[d]++
	}
	a.dayErrors = make(map[ledger.Day]string)
	a.focused().Focus()
}

func (a *App) focused() *textinput.Model {
	return &a.rows[ledger.Days[a.focusDay]][a.focusCol]
}

func (a *App) moveFocus(delta int) tea.Cmd {
	a.focused().Blur()
	pos := a.focusDay*int(columnCount) + int(a.focusCol) + delta
	total := len(ledger.Days) * int(columnCount)
	pos = (pos%total + total) % total
	a.focusDay = pos / int(columnCount)
	a.focusCol = column(pos % int(columnCount))
	return a.focused().Focus()
}

func (a *App) moveRow(delta int) tea.Cmd {
	a.focused().Blur()
	n := len(ledger.Days)
	a.focusDay = ((a.focusDay+delta)%n + n) % n
	return a.focused().Focus()
}

func (a *App) GetResult() *Result {
	return a.result
}
