package notify

import (
	"io"
	"log/slog"

	"github.com/gen2brain/beeep"
)

// Notifier shows a short message to the user outside the terminal.
type Notifier interface {
	Notify(title, message string) error
}

// Desktop sends notifications through the OS notification service.
type Desktop struct {
	logger *slog.Logger
}

func NewDesktop(logger *slog.Logger) *Desktop {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	beeep.AppName = "hebdo"
	return &Desktop{logger: logger}
}

func (d *Desktop) Notify(title, message string) error {
	d.logger.Debug("sending desktop notification", "title", title)
	if err := beeep.Notify(title, message, ""); err != nil {
		d.logger.Warn("desktop notification failed", "error", err)
		return err
	}
	return nil
}

// Discard drops every notification.
type Discard struct{}

func (Discard) Notify(string, string) error { return nil }
