// Package mapping owns the durable note-to-key mapping table.
package mapping

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/leandrodaf/midikey/sdk/contracts"
)

// Table associates MIDI note numbers with key tokens. A note absent from the
// table is unmapped and produces no key events. Tables handed to the engine
// are treated as immutable; mutate a Clone and republish instead.
type Table map[uint8]string

// Clone returns an independent copy of the table.
func (t Table) Clone() Table {
	c := make(Table, len(t))
	for note, token := range t {
		c[note] = token
	}
	return c
}

// Store reads and writes the persisted mapping document, a flat TOML
// key-value file keyed by note number.
type Store struct {
	path   string
	logger contracts.Logger

	mu      sync.Mutex // serializes writers
	watcher *watcher
}

// NewStore creates a store persisting to the given path.
func NewStore(path string, logger contracts.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Path returns the location of the persisted document.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted mapping document. A missing, unreadable, or
// malformed document falls back to the default table so the engine always
// starts with a usable mapping; load never fails.
func (s *Store) Load() Table {
	var raw map[string]string
	if _, err := toml.DecodeFile(s.path, &raw); err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("mapping document unreadable, using default table",
				s.logger.Field().String("path", s.path),
				s.logger.Field().Error("error", err))
		}
		return DefaultTable()
	}

	table := make(Table, len(raw))
	for key, token := range raw {
		note, err := strconv.Atoi(key)
		if err != nil || note < 0 || note > 127 {
			s.logger.Warn("mapping document malformed, using default table",
				s.logger.Field().String("path", s.path),
				s.logger.Field().String("key", key))
			return DefaultTable()
		}
		table[uint8(note)] = token
	}
	return table
}

// Save writes the table to disk. The document is written to a temporary file
// and renamed into place so that a partial write cannot corrupt the next
// load beyond the default-table fallback.
func (s *Store) Save(table Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := make(map[string]string, len(table))
	for note, token := range table {
		raw[strconv.Itoa(int(note))] = token
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create mapping directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".mapping-*.toml")
	if err != nil {
		return fmt.Errorf("create temporary mapping file: %w", err)
	}
	if err := toml.NewEncoder(tmp).Encode(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("encode mapping document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temporary mapping file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace mapping document: %w", err)
	}
	return nil
}
