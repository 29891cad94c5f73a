package reminder

import (
	"errors"
	"sort"
	"sync"
)

// Permission mirrors the platform notification permission state.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// ErrInvalidOffset is returned when a non-positive offset is added.
var ErrInvalidOffset = errors.New("reminder: offset must be a positive minute count")

// PolicyStorage persists the global reminder policy across sessions.
type PolicyStorage interface {
	LoadOffsets() (offsets []int, ok bool, err error)
	SaveOffsets(offsets []int) error
	LoadPermission() (perm Permission, ok bool, err error)
	SavePermission(perm Permission) error
}

// Policy holds the user's global default reminder offsets and the last
// known notification permission state. It is shared between the settings
// UI and the scheduler; subscribers are notified after every mutation.
type Policy struct {
	mu          sync.Mutex
	offsets     []int
	permission  Permission
	storage     PolicyStorage
	subscribers []func()
}

// NewPolicy creates a policy seeded from storage, falling back to defaults
// when nothing is stored or the stored value is unreadable. storage may be
// nil for tests.
func NewPolicy(storage PolicyStorage, defaults []int) *Policy {
	p := &Policy{
		offsets:    normalizeOffsets(defaults),
		permission: PermissionDefault,
		storage:    storage,
	}

	if storage != nil {
		if offsets, ok, err := storage.LoadOffsets(); err == nil && ok {
			p.offsets = normalizeOffsets(offsets)
		}
		if perm, ok, err := storage.LoadPermission(); err == nil && ok {
			p.permission = perm
		}
	}

	return p
}

// Offsets returns a copy of the global default offsets, sorted descending.
func (p *Policy) Offsets() []int {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]int, len(p.offsets))
	copy(out, p.offsets)
	return out
}

// AddOffset adds a minutes-before-due threshold to the global defaults.
// Duplicates collapse; adding an existing offset is a persisted no-op.
func (p *Policy) AddOffset(minutes int) error {
	if minutes <= 0 {
		return ErrInvalidOffset
	}

	p.mu.Lock()
	p.offsets = normalizeOffsets(append(p.offsets, minutes))
	p.persistOffsetsLocked()
	p.mu.Unlock()

	p.notify()
	return nil
}

// RemoveOffset deletes a threshold from the global defaults.
func (p *Policy) RemoveOffset(minutes int) {
	p.mu.Lock()
	kept := p.offsets[:0]
	for _, o := range p.offsets {
		if o != minutes {
			kept = append(kept, o)
		}
	}
	p.offsets = kept
	p.persistOffsetsLocked()
	p.mu.Unlock()

	p.notify()
}

// Permission returns the last known notification permission state.
func (p *Policy) Permission() Permission {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.permission
}

// SetPermission records the platform permission state and persists it.
func (p *Policy) SetPermission(perm Permission) {
	p.mu.Lock()
	p.permission = perm
	if p.storage != nil {
		_ = p.storage.SavePermission(perm)
	}
	p.mu.Unlock()

	p.notify()
}

// Subscribe registers fn to run after every policy mutation and returns an
// unsubscribe function. Callbacks run outside the policy lock.
func (p *Policy) Subscribe(fn func()) func() {
	p.mu.Lock()
	p.subscribers = append(p.subscribers, fn)
	idx := len(p.subscribers) - 1
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		p.subscribers[idx] = nil
		p.mu.Unlock()
	}
}

func (p *Policy) notify() {
	p.mu.Lock()
	subs := make([]func(), len(p.subscribers))
	copy(subs, p.subscribers)
	p.mu.Unlock()

	for _, fn := range subs {
		if fn != nil {
			fn()
		}
	}
}

// persistOffsetsLocked writes the offset list to storage. Callers hold p.mu.
// Storage failures degrade to in-memory-only policy for this session.
func (p *Policy) persistOffsetsLocked() {
	if p.storage == nil {
		return
	}
	_ = p.storage.SaveOffsets(p.offsets)
}

// normalizeOffsets drops non-positive values, collapses duplicates, and
// sorts descending for display.
func normalizeOffsets(offsets []int) []int {
	seen := make(map[int]struct{}, len(offsets))
	out := make([]int, 0, len(offsets))
	for _, o := range offsets {
		if o <= 0 {
			continue
		}
		if _, dup := seen[o]; dup {
			continue
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}
