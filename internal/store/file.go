package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/christopherklint97/hebdo/internal/ledger"
)

const DefaultPath = "data.txt"

// File keeps the record as a JSON document in a single text file.
type File struct {
	path string
}

func NewFile(path string) *File {
	if path == "" {
		path = DefaultPath
	}
	return &File{path: path}
}

func (f *File) Path() string {
	return f.path
}

func (f *File) Load() (ledger.Record, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}

	rec, err := decodeRecord(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", f.path, err)
	}
	return rec, nil
}

// Save overwrites the file atomically (tmp + rename).
func (f *File) Save(rec ledger.Record) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing temp data file: %w", err)
	}

	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming data file: %w", err)
	}

	return nil
}

func (f *File) Close() error {
	return nil
}
