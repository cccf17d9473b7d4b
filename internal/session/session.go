package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/christopherklint97/hebdo/internal/ledger"
	"github.com/christopherklint97/hebdo/internal/notify"
	"github.com/christopherklint97/hebdo/internal/store"
)

// Session wires a ledger to its storage backend. It is what the view
// talks to; the ledger itself knows nothing about files or screens.
type Session struct {
	ledger   *ledger.Ledger
	backend  store.Backend
	notifier notify.Notifier
	logger   *slog.Logger

	targetReached bool
}

func New(backend store.Backend, notifier notify.Notifier, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Session{
		ledger:   ledger.New(),
		backend:  backend,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *Session) Ledger() *ledger.Ledger {
	return s.ledger
}

// Load restores the saved week. A missing or corrupt artifact leaves a
// fresh ledger; only read failures are returned.
func (s *Session) Load() error {
	rec, err := s.backend.Load()
	switch {
	case err == nil:
		s.ledger.ImportState(rec)
		s.logger.Debug("loaded saved week", "days", len(rec))
	case errors.Is(err, store.ErrNotFound):
		s.ledger.Reset()
		s.logger.Debug("no saved week, starting empty")
	case errors.Is(err, store.ErrCorrupt):
		s.ledger.ImportState(nil)
		s.logger.Warn("saved week is unreadable, starting empty", "error", err)
	default:
		return fmt.Errorf("loading saved week: %w", err)
	}

	s.ledger.Process()
	s.targetReached = s.ledger.Summary().TargetReached()
	return nil
}

// Validate commits a full week of raw input. Arrivals and departures
// are checked together: on error the returned *ledger.ValidationError
// names every offending day and nothing is committed.
func (s *Session) Validate(arrivals, departures map[ledger.Day]ledger.RawTime) (ledger.Summary, error) {
	_, arrErr := ledger.ParseTimes(arrivals)
	_, depErr := ledger.ParseTimes(departures)
	if arrErr != nil || depErr != nil {
		verr := mergeValidationErrors(arrErr, depErr)
		s.logger.Debug("rejected week input", "days", verr.Days)
		return ledger.Summary{}, verr
	}

	if err := s.ledger.SetArrivals(arrivals); err != nil {
		return ledger.Summary{}, err
	}
	if err := s.ledger.SetDepartures(departures); err != nil {
		return ledger.Summary{}, err
	}
	s.ledger.Process()

	sum := s.ledger.Summary()
	s.checkTarget(sum)
	return sum, nil
}

// SetDay changes a single day and keeps the others as committed.
func (s *Session) SetDay(day ledger.Day, arrival, departure ledger.RawTime) (ledger.Summary, error) {
	arrivals := RawWeek(s.ledger.Arrivals())
	departures := RawWeek(s.ledger.Departures())
	arrivals[day] = arrival
	departures[day] = departure
	return s.Validate(arrivals, departures)
}

func (s *Session) Reset() {
	s.ledger.Reset()
	s.targetReached = false
}

func (s *Session) Save() error {
	if err := s.backend.Save(s.ledger.ExportState()); err != nil {
		s.logger.Error("saving week failed", "error", err)
		return fmt.Errorf("saving week: %w", err)
	}
	s.logger.Debug("saved week")
	return nil
}

func (s *Session) Close() error {
	return s.backend.Close()
}

// checkTarget notifies once when the week's total crosses the target.
func (s *Session) checkTarget(sum ledger.Summary) {
	reached := sum.TargetReached()
	if reached && !s.targetReached {
		msg := fmt.Sprintf("Weekly target reached: %s worked", sum.Total)
		if err := s.notifier.Notify("hebdo", msg); err != nil {
			s.logger.Warn("notification failed", "error", err)
		}
	}
	s.targetReached = reached
}

func mergeValidationErrors(errs ...error) *ledger.ValidationError {
	seen := make(map[ledger.Day]bool)
	for _, err := range errs {
		var verr *ledger.ValidationError
		if errors.As(err, &verr) {
			for _, d := range verr.Days {
				seen[d] = true
			}
		}
	}

	merged := &ledger.ValidationError{}
	for _, d := range ledger.Days {
		if seen[d] {
			merged.Days = append(merged.Days, d)
			delete(seen, d)
		}
	}
	for _, err := range errs {
		var verr *ledger.ValidationError
		if !errors.As(err, &verr) {
			continue
		}
		for _, d := range verr.Days {
			if seen[d] {
				merged.Days = append(merged.Days, d)
				delete(seen, d)
			}
		}
	}
	return merged
}

// RawWeek formats committed times back into raw input, minutes padded
// to two digits.
func RawWeek(times map[ledger.Day]ledger.TimeOfDay) map[ledger.Day]ledger.RawTime {
	raw := make(map[ledger.Day]ledger.RawTime, len(times))
	for d, t := range times {
		raw[d] = ledger.RawTime{
			Hours:   fmt.Sprintf("%d", t.Hours),
			Minutes: fmt.Sprintf("%02d", t.Minutes),
		}
	}
	return raw
}
