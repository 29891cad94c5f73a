package reminder

import (
	"reflect"
	"testing"
)

// memPolicyStorage is an in-memory PolicyStorage for tests.
type memPolicyStorage struct {
	offsets    []int
	hasOffsets bool
	perm       Permission
	hasPerm    bool
}

func (m *memPolicyStorage) LoadOffsets() ([]int, bool, error) {
	return m.offsets, m.hasOffsets, nil
}

func (m *memPolicyStorage) SaveOffsets(offsets []int) error {
	m.offsets = append([]int(nil), offsets...)
	m.hasOffsets = true
	return nil
}

func (m *memPolicyStorage) LoadPermission() (Permission, bool, error) {
	return m.perm, m.hasPerm, nil
}

func (m *memPolicyStorage) SavePermission(perm Permission) error {
	m.perm = perm
	m.hasPerm = true
	return nil
}

func TestPolicySeedsDefaults(t *testing.T) {
	p := NewPolicy(nil, []int{10, 60})

	if got := p.Offsets(); !reflect.DeepEqual(got, []int{60, 10}) {
		t.Fatalf("Offsets = %v, want [60 10] sorted descending", got)
	}
	if got := p.Permission(); got != PermissionDefault {
		t.Fatalf("Permission = %q, want default", got)
	}
}

func TestPolicyAddOffsetDeduplicatesAndSorts(t *testing.T) {
	p := NewPolicy(nil, []int{60, 10})

	if err := p.AddOffset(45); err != nil {
		t.Fatalf("AddOffset(45): %v", err)
	}
	if err := p.AddOffset(45); err != nil {
		t.Fatalf("AddOffset(45) again: %v", err)
	}

	if got := p.Offsets(); !reflect.DeepEqual(got, []int{60, 45, 10}) {
		t.Fatalf("Offsets = %v, want [60 45 10]", got)
	}
}

func TestPolicyRejectsNonPositiveOffsets(t *testing.T) {
	p := NewPolicy(nil, []int{60})

	for _, minutes := range []int{0, -5} {
		if err := p.AddOffset(minutes); err != ErrInvalidOffset {
			t.Fatalf("AddOffset(%d) = %v, want ErrInvalidOffset", minutes, err)
		}
	}
}

func TestPolicyRemoveOffset(t *testing.T) {
	p := NewPolicy(nil, []int{60, 10})

	p.RemoveOffset(60)

	if got := p.Offsets(); !reflect.DeepEqual(got, []int{10}) {
		t.Fatalf("Offsets = %v, want [10]", got)
	}
}

func TestPolicyPersistsThroughStorage(t *testing.T) {
	storage := &memPolicyStorage{}
	p := NewPolicy(storage, []int{60, 10})

	if err := p.AddOffset(45); err != nil {
		t.Fatalf("AddOffset: %v", err)
	}
	p.SetPermission(PermissionGranted)

	// A fresh policy over the same storage sees the mutations.
	reloaded := NewPolicy(storage, []int{60, 10})
	if got := reloaded.Offsets(); !reflect.DeepEqual(got, []int{60, 45, 10}) {
		t.Fatalf("reloaded Offsets = %v, want [60 45 10]", got)
	}
	if got := reloaded.Permission(); got != PermissionGranted {
		t.Fatalf("reloaded Permission = %q, want granted", got)
	}
}

func TestPolicyNotifiesSubscribers(t *testing.T) {
	p := NewPolicy(nil, []int{60})

	calls := 0
	unsubscribe := p.Subscribe(func() { calls++ })

	if err := p.AddOffset(30); err != nil {
		t.Fatalf("AddOffset: %v", err)
	}
	p.SetPermission(PermissionDenied)

	if calls != 2 {
		t.Fatalf("subscriber calls = %d, want 2", calls)
	}

	unsubscribe()
	p.RemoveOffset(30)
	if calls != 2 {
		t.Fatalf("subscriber calls after unsubscribe = %d, want 2", calls)
	}
}
