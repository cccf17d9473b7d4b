package store

import (
	"errors"

	"github.com/christopherklint97/hebdo/internal/ledger"
)

var (
	// ErrNotFound means nothing has been saved yet.
	ErrNotFound = errors.New("no saved week")
	// ErrCorrupt means saved data exists but is not a week record.
	ErrCorrupt = errors.New("saved week is corrupt")
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Backend persists the ledger record between sessions.
type Backend interface {
	Load() (ledger.Record, error)
	Save(rec ledger.Record) error
	Close() error
}
