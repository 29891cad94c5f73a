package reminder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
)

// ledgerFile is the on-disk form of the ledger: the key set plus the local
// calendar day it belongs to. A file written on an earlier day is ignored
// on load, which gives the not-cross-session scoping the engine expects.
type ledgerFile struct {
	Day  string   `json:"day"`
	Keys []string `json:"keys"`
}

// dayLayout formats a local calendar day for the ledger file.
const dayLayout = "2006-01-02"

// FileStorage is a SessionStorage backed by a JSON file written atomically.
type FileStorage struct {
	path string
	now  func() time.Time
}

// NewFileStorage creates a file-backed session storage at path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path, now: time.Now}
}

// DefaultLedgerPath returns the conventional location of the ledger file,
// next to the rest of the client's state.
func DefaultLedgerPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "dailyquest-reminders.json")
	}
	return filepath.Join(home, ".config", "dailyquest", "reminders.json")
}

// Load reads the persisted key set. Missing files, unreadable JSON, and
// files from a different calendar day all yield an empty set.
func (f *FileStorage) Load() ([]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, nil
	}

	var lf ledgerFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, nil
	}

	if lf.Day != f.now().Format(dayLayout) {
		return nil, nil
	}

	return lf.Keys, nil
}

// Save atomically replaces the ledger file with the given key set, stamped
// with the current local day.
func (f *FileStorage) Save(keys []string) error {
	if keys == nil {
		keys = []string{}
	}

	data, err := json.Marshal(ledgerFile{
		Day:  f.now().Format(dayLayout),
		Keys: keys,
	})
	if err != nil {
		return fmt.Errorf("marshaling ledger: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	if err := atomic.WriteFile(f.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing ledger file: %w", err)
	}
	return nil
}
