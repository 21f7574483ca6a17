package mapping

import (
	"maps"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leandrodaf/midikey/internal/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mapping.toml")
	return NewStore(path, logger.NewNopLogger())
}

func TestDefaultTableExactness(t *testing.T) {
	table := DefaultTable()
	if len(table) != 61 {
		t.Fatalf("default table has %d entries, want 61", len(table))
	}

	want := map[uint8]string{
		36: "1", 37: "!", 38: "2", 39: "@", 40: "3", 41: "4",
		42: "$", 43: "5", 44: "%", 45: "6", 46: "^", 47: "7",
		48: "8", 49: "&", 50: "9", 51: "*", 52: "0", 53: "q",
		54: "Q", 55: "w", 56: "W", 57: "e", 58: "E", 59: "r",
		60: "t", 61: "T", 62: "y", 63: "Y", 64: "u", 65: "i",
		66: "I", 67: "o", 68: "O", 69: "p", 70: "P", 71: "a",
		72: "s", 73: "S", 74: "d", 75: "D", 76: "f", 77: "g",
		78: "G", 79: "h", 80: "H", 81: "j", 82: "J", 83: "k",
		84: "l", 85: "L", 86: "z", 87: "Z", 88: "x", 89: "c",
		90: "C", 91: "v", 92: "V", 93: "b", 94: "B", 95: "n",
		96: "m",
	}
	for note, token := range want {
		if got := table[note]; got != token {
			t.Errorf("note %d maps to %q, want %q", note, got, token)
		}
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	s := newTestStore(t)
	if !maps.Equal(s.Load(), DefaultTable()) {
		t.Error("missing document should load the default table")
	}
}

func TestLoadCorruptFileFallsBack(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"not toml", "{\x00\x01 garbage"},
		{"non-string value", "\"60\" = 12\n"},
		{"non-numeric key", "\"middle-c\" = \"t\"\n"},
		{"note out of range", "\"200\" = \"t\"\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newTestStore(t)
			if err := os.WriteFile(s.Path(), []byte(c.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if !maps.Equal(s.Load(), DefaultTable()) {
				t.Error("corrupt document should load the default table")
			}
		})
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	table := s.Load()
	table[60] = "Z"
	if err := s.Save(table); err != nil {
		t.Fatalf("save: %v", err)
	}

	// A fresh store at the same path models a process restart.
	restarted := NewStore(s.Path(), logger.NewNopLogger())
	loaded := restarted.Load()
	if loaded[60] != "Z" {
		t.Errorf("note 60 maps to %q after reload, want %q", loaded[60], "Z")
	}
	for note, token := range DefaultTable() {
		if note == 60 {
			continue
		}
		if loaded[note] != token {
			t.Errorf("note %d changed to %q, want %q untouched", note, loaded[note], token)
		}
	}
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "mapping.toml")
	s := NewStore(path, logger.NewNopLogger())
	if err := s.Save(DefaultTable()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !maps.Equal(s.Load(), DefaultTable()) {
		t.Error("reload after save differs from saved table")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := DefaultTable()
	clone := orig.Clone()
	clone[60] = "Z"
	if orig[60] != "t" {
		t.Error("mutating a clone leaked into the original table")
	}
}

func TestWatchReloadsOnExternalEdit(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(DefaultTable()); err != nil {
		t.Fatalf("save: %v", err)
	}

	reloaded := make(chan Table, 4)
	if err := s.Watch(func(table Table) { reloaded <- table }); err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer s.Unwatch()

	edited := DefaultTable()
	edited[60] = "Z"
	if err := s.Save(edited); err != nil {
		t.Fatalf("save: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case table := <-reloaded:
			if table[60] == "Z" {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for the watcher to reload the edit")
		}
	}
}
