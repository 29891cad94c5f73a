package reminder

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ChoiBongGeun/DailyQuest/internal/store"
)

// Settings keys under which the policy lives in the client database.
const (
	settingOffsets    = "reminder_offsets"
	settingPermission = "notification_permission"
)

// StorePolicyStorage persists the reminder policy in the client's settings
// table, keeping it across sessions alongside the task cache.
type StorePolicyStorage struct {
	store store.Store
}

// NewStorePolicyStorage wraps a store as policy storage.
func NewStorePolicyStorage(s store.Store) *StorePolicyStorage {
	return &StorePolicyStorage{store: s}
}

// LoadOffsets reads the stored offset list.
func (s *StorePolicyStorage) LoadOffsets() ([]int, bool, error) {
	raw, ok, err := s.store.GetSetting(context.Background(), settingOffsets)
	if err != nil || !ok {
		return nil, false, err
	}

	var offsets []int
	if err := json.Unmarshal([]byte(raw), &offsets); err != nil {
		// Corrupt value: fall back to defaults rather than failing.
		return nil, false, nil
	}
	return offsets, true, nil
}

// SaveOffsets writes the offset list.
func (s *StorePolicyStorage) SaveOffsets(offsets []int) error {
	data, err := json.Marshal(offsets)
	if err != nil {
		return fmt.Errorf("marshaling offsets: %w", err)
	}
	return s.store.SetSetting(context.Background(), settingOffsets, string(data))
}

// LoadPermission reads the stored permission state.
func (s *StorePolicyStorage) LoadPermission() (Permission, bool, error) {
	raw, ok, err := s.store.GetSetting(context.Background(), settingPermission)
	if err != nil || !ok {
		return PermissionDefault, false, err
	}

	switch Permission(raw) {
	case PermissionGranted, PermissionDenied, PermissionDefault:
		return Permission(raw), true, nil
	default:
		return PermissionDefault, false, nil
	}
}

// SavePermission writes the permission state.
func (s *StorePolicyStorage) SavePermission(perm Permission) error {
	return s.store.SetSetting(context.Background(), settingPermission, string(perm))
}
