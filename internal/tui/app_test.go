package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/christopherklint97/hebdo/internal/ledger"
	"github.com/christopherklint97/hebdo/internal/session"
	"github.com/christopherklint97/hebdo/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, path string) *App {
	t.Helper()
	sess := session.New(store.NewFile(path), nil, nil)
	require.NoError(t, sess.Load())
	return NewApp(sess, time.Millisecond)
}

func fillWeek(a *App, arrH, arrM, depH, depM string) {
	for _, d := range ledger.Days {
		a.rows[d].set(
			ledger.RawTime{Hours: arrH, Minutes: arrM},
			ledger.RawTime{Hours: depH, Minutes: depM},
		)
	}
}

func send(a *App, msg tea.Msg) tea.Cmd {
	_, cmd := a.Update(msg)
	return cmd
}

// isQuit runs cmd and reports whether it (or any batched command) quits.
func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	switch msg := cmd().(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if isQuit(c) {
				return true
			}
		}
	}
	return false
}

// clears runs cmd and collects the error clears it schedules.
func clears(cmd tea.Cmd) []clearErrorMsg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case clearErrorMsg:
		return []clearErrorMsg{msg}
	case tea.BatchMsg:
		var out []clearErrorMsg
		for _, c := range msg {
			out = append(out, clears(c)...)
		}
		return out
	}
	return nil
}

func TestApp_ValidateShowsDurations(t *testing.T) {
	a := newTestApp(t, filepath.Join(t.TempDir(), "data.txt"))
	fillWeek(a, "8", "00", "16", "00")

	send(a, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, ledger.WorkDuration{Hours: 7}, a.summary.Days[ledger.Monday])
	view := a.View()
	assert.Contains(t, view, "7:00")
	assert.Contains(t, view, "35:00")
	assert.Contains(t, view, "3:30")
	assert.NotContains(t, view, invalidMsg)
}

func TestApp_InvalidDayShowsMessageUntilCleared(t *testing.T) {
	a := newTestApp(t, filepath.Join(t.TempDir(), "data.txt"))
	fillWeek(a, "8", "00", "16", "00")
	a.rows[ledger.Tuesday][arrivalHours].SetValue("ab")

	cmd := send(a, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, invalidMsg, a.dayErrors[ledger.Tuesday])
	assert.Len(t, a.dayErrors, 1)
	assert.Contains(t, a.View(), invalidMsg)

	// nothing committed
	assert.Equal(t, ledger.TimeOfDay{}, a.session.Ledger().Arrivals()[ledger.Monday])

	pending := clears(cmd)
	require.Len(t, pending, 1)
	assert.Equal(t, ledger.Tuesday, pending[0].day)

	send(a, pending[0])
	assert.Empty(t, a.dayErrors)
}

func TestApp_StaleClearDoesNotHideNewError(t *testing.T) {
	a := newTestApp(t, filepath.Join(t.TempDir(), "data.txt"))
	fillWeek(a, "8", "00", "16", "00")
	a.rows[ledger.Friday][departureMinutes].SetValue("99")

	first := clears(send(a, tea.KeyMsg{Type: tea.KeyEnter}))
	require.Len(t, first, 1)
	stale := first[0]

	second := clears(send(a, tea.KeyMsg{Type: tea.KeyEnter}))
	require.Len(t, second, 1)
	fresh := second[0]
	assert.NotEqual(t, stale.seq, fresh.seq)

	send(a, stale)
	assert.Equal(t, invalidMsg, a.dayErrors[ledger.Friday], "stale clear must be ignored")

	send(a, fresh)
	assert.Empty(t, a.dayErrors)
}

func TestApp_SuccessfulValidationClearsOldErrors(t *testing.T) {
	a := newTestApp(t, filepath.Join(t.TempDir(), "data.txt"))
	fillWeek(a, "8", "00", "16", "00")
	a.rows[ledger.Monday][arrivalHours].SetValue("")
	send(a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Contains(t, a.dayErrors, ledger.Monday)

	a.rows[ledger.Monday][arrivalHours].SetValue("8")
	cmd := send(a, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, a.dayErrors)
}

func TestApp_Reset(t *testing.T) {
	a := newTestApp(t, filepath.Join(t.TempDir(), "data.txt"))
	fillWeek(a, "8", "00", "16", "00")
	send(a, tea.KeyMsg{Type: tea.KeyEnter})

	send(a, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, "0", a.rows[ledger.Monday][arrivalHours].Value())
	assert.Equal(t, "00", a.rows[ledger.Monday][departureMinutes].Value())
	assert.Equal(t, ledger.WorkDuration{}, a.summary.Total)
	assert.Equal(t, ledger.New().ExportState(), a.session.Ledger().ExportState())
}

func TestApp_LoadsSavedWeekIntoFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	doc := `{"Lundi": {"arrivals": [8, 5], "departures": [16, 30]}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	a := newTestApp(t, path)
	assert.Equal(t, "8", a.rows[ledger.Monday][arrivalHours].Value())
	assert.Equal(t, "05", a.rows[ledger.Monday][arrivalMinutes].Value())
	assert.Equal(t, "30", a.rows[ledger.Monday][departureMinutes].Value())
	assert.Equal(t, "0", a.rows[ledger.Tuesday][arrivalHours].Value())
	assert.Contains(t, a.View(), "7:25")
}

func TestApp_QuitValidatesAndSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	a := newTestApp(t, path)
	fillWeek(a, "8", "00", "16", "00")

	cmd := send(a, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, isQuit(cmd))
	require.NotNil(t, a.GetResult())
	assert.True(t, a.GetResult().Saved)

	rec, err := store.NewFile(path).Load()
	require.NoError(t, err)
	assert.Equal(t, ledger.TimeOfDay{Hours: 16}, rec[ledger.Friday].Departure)
}

func TestApp_QuitWithInvalidInputSavesLastCommitted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	a := newTestApp(t, path)
	fillWeek(a, "8", "00", "16", "00")
	send(a, tea.KeyMsg{Type: tea.KeyEnter})

	a.rows[ledger.Monday][arrivalHours].SetValue("xx")
	cmd := send(a, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, isQuit(cmd))

	rec, err := store.NewFile(path).Load()
	require.NoError(t, err)
	assert.Equal(t, ledger.TimeOfDay{Hours: 8}, rec[ledger.Monday].Arrival)
}

func TestApp_FailedSaveKeepsProgramOpen(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	// the data file's parent is a regular file, so every save fails
	sess := session.New(store.NewFile(filepath.Join(blocker, "data.txt")), nil, nil)
	a := NewApp(sess, time.Millisecond)
	fillWeek(a, "8", "00", "16", "00")

	cmd := send(a, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, isQuit(cmd))
	assert.Nil(t, a.GetResult())
	assert.NotEmpty(t, a.errMsg)
	assert.Contains(t, a.View(), "quit without saving")

	cmd = send(a, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, isQuit(cmd))
	require.NotNil(t, a.GetResult())
	assert.False(t, a.GetResult().Saved)
	assert.Error(t, a.GetResult().SaveErr)
}

func TestApp_CtrlSSavesWithoutQuitting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	a := newTestApp(t, path)
	fillWeek(a, "9", "00", "17", "00")

	cmd := send(a, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.False(t, isQuit(cmd))
	assert.Equal(t, "Saved", a.status)

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestApp_FocusNavigation(t *testing.T) {
	a := newTestApp(t, filepath.Join(t.TempDir(), "data.txt"))
	assert.True(t, a.rows[ledger.Monday][arrivalHours].Focused())

	send(a, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, arrivalMinutes, a.focusCol)
	assert.False(t, a.rows[ledger.Monday][arrivalHours].Focused())
	assert.True(t, a.rows[ledger.Monday][arrivalMinutes].Focused())

	send(a, tea.KeyMsg{Type: tea.KeyShiftTab})
	send(a, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, len(ledger.Days)-1, a.focusDay)
	assert.Equal(t, departureMinutes, a.focusCol)

	send(a, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, a.focusDay)
	assert.Equal(t, departureMinutes, a.focusCol)
}

func TestApp_TypingGoesToFocusedField(t *testing.T) {
	a := newTestApp(t, filepath.Join(t.TempDir(), "data.txt"))
	a.rows[ledger.Monday][arrivalHours].SetValue("")

	send(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'9'}})
	assert.Equal(t, "9", a.rows[ledger.Monday][arrivalHours].Value())
	assert.Equal(t, "0", a.rows[ledger.Tuesday][arrivalHours].Value())
}
