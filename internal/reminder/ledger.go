package reminder

import "sync"

// SessionStorage persists the set of delivered reminder keys for the
// current day. Implementations must scope the data to a single calendar
// day; Load never returns entries written on a different day.
type SessionStorage interface {
	// Load returns the persisted key strings, or nil when nothing usable
	// is stored. Corrupt or missing data must yield (nil, nil): the
	// ledger fails open and under-suppresses rather than blocking.
	Load() ([]string, error)

	// Save replaces the persisted key set.
	Save(keys []string) error
}

// Ledger tracks which (task, offset, deadline) reminders have already been
// delivered today so a restart within the day does not re-fire them.
// Storage failures are swallowed: the in-memory set stays authoritative for
// the life of the process and the worst case is a repeated reminder.
type Ledger struct {
	mu      sync.Mutex
	fired   map[string]struct{}
	storage SessionStorage
}

// NewLedger creates a ledger rehydrated from storage. storage may be nil,
// in which case the ledger lives purely in memory.
func NewLedger(storage SessionStorage) *Ledger {
	l := &Ledger{
		fired:   make(map[string]struct{}),
		storage: storage,
	}

	if storage != nil {
		keys, err := storage.Load()
		if err == nil {
			for _, k := range keys {
				l.fired[k] = struct{}{}
			}
		}
	}

	return l
}

// Has reports whether the reminder identified by key already fired today.
func (l *Ledger) Has(key Key) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.fired[key.String()]
	return ok
}

// Mark records that the reminder fired and persists immediately.
// Marking an already-present key is a no-op.
func (l *Ledger) Mark(key Key) {
	l.mu.Lock()
	defer l.mu.Unlock()

	flat := key.String()
	if _, ok := l.fired[flat]; ok {
		return
	}
	l.fired[flat] = struct{}{}
	l.persistLocked()
}

// Clear empties the ledger and persists immediately. Invoked on the
// midnight rollover.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.fired = make(map[string]struct{})
	l.persistLocked()
}

// Len returns the number of recorded reminder deliveries.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.fired)
}

// persistLocked writes the current set to storage. Callers hold l.mu.
func (l *Ledger) persistLocked() {
	if l.storage == nil {
		return
	}

	keys := make([]string, 0, len(l.fired))
	for k := range l.fired {
		keys = append(keys, k)
	}
	// A failed save only costs de-duplication memory on the next start.
	_ = l.storage.Save(keys)
}
