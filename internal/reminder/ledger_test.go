package reminder

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ChoiBongGeun/DailyQuest/internal/model"
)

// memStorage is an in-memory SessionStorage recording save calls.
type memStorage struct {
	keys      []string
	saveCalls int
	loadErr   error
	saveErr   error
}

func (m *memStorage) Load() ([]string, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.keys, nil
}

func (m *memStorage) Save(keys []string) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.keys = keys
	return nil
}

func testKey(taskID int64, offset int) Key {
	return NewKey(model.Task{
		ID:      taskID,
		DueDate: "2026-03-14",
		DueTime: "18:00",
	}, offset)
}

func TestLedgerMarkIsIdempotent(t *testing.T) {
	storage := &memStorage{}
	ledger := NewLedger(storage)
	key := testKey(1, 60)

	ledger.Mark(key)
	ledger.Mark(key)

	if got := ledger.Len(); got != 1 {
		t.Fatalf("Len = %d, want 1", got)
	}
	if storage.saveCalls != 1 {
		t.Fatalf("save calls = %d, want 1 (re-mark must be a no-op)", storage.saveCalls)
	}
	if !ledger.Has(key) {
		t.Fatal("Has = false after Mark")
	}
}

func TestLedgerKeyEmbedsDeadline(t *testing.T) {
	ledger := NewLedger(nil)
	task := model.Task{ID: 7, DueDate: "2026-03-14", DueTime: "18:00"}

	ledger.Mark(NewKey(task, 60))

	// Editing the deadline re-arms the reminder.
	task.DueTime = "19:00"
	if ledger.Has(NewKey(task, 60)) {
		t.Fatal("key with edited deadline must not be suppressed")
	}
}

func TestLedgerClear(t *testing.T) {
	storage := &memStorage{}
	ledger := NewLedger(storage)

	ledger.Mark(testKey(1, 60))
	ledger.Mark(testKey(2, 10))
	ledger.Clear()

	if got := ledger.Len(); got != 0 {
		t.Fatalf("Len after Clear = %d, want 0", got)
	}
	if len(storage.keys) != 0 {
		t.Fatalf("persisted keys after Clear = %v, want empty", storage.keys)
	}
}

func TestLedgerRehydratesFromStorage(t *testing.T) {
	key := testKey(1, 60)
	storage := &memStorage{keys: []string{key.String()}}

	ledger := NewLedger(storage)
	if !ledger.Has(key) {
		t.Fatal("rehydrated ledger missing persisted key")
	}
}

func TestLedgerFailsOpenOnStorageErrors(t *testing.T) {
	ledger := NewLedger(&memStorage{loadErr: errors.New("storage disabled")})
	if got := ledger.Len(); got != 0 {
		t.Fatalf("Len = %d, want 0 on load failure", got)
	}

	// Save failures keep the in-memory set authoritative.
	ledger = NewLedger(&memStorage{saveErr: errors.New("disk full")})
	key := testKey(1, 60)
	ledger.Mark(key)
	if !ledger.Has(key) {
		t.Fatal("Has = false after Mark with failing storage")
	}
}

func TestFileStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reminders.json")
	fs := NewFileStorage(path)

	if err := fs.Save([]string{"1-60-2026-03-14-18:00"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	keys, err := fs.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(keys) != 1 || keys[0] != "1-60-2026-03-14-18:00" {
		t.Fatalf("Load = %v, want the saved key", keys)
	}
}

func TestFileStorageDiscardsOtherDays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reminders.json")

	yesterday := NewFileStorage(path)
	yesterday.now = func() time.Time {
		return time.Date(2026, 3, 13, 23, 50, 0, 0, time.Local)
	}
	if err := yesterday.Save([]string{"1-60-2026-03-14-00:30"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	today := NewFileStorage(path)
	today.now = func() time.Time {
		return time.Date(2026, 3, 14, 0, 5, 0, 0, time.Local)
	}
	keys, err := today.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if keys != nil {
		t.Fatalf("Load = %v, want nil for a previous day's file", keys)
	}
}

func TestFileStorageFailsOpenOnCorruption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reminders.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}

	keys, err := NewFileStorage(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if keys != nil {
		t.Fatalf("Load = %v, want nil for corrupt file", keys)
	}
}
