package reminder

import "github.com/ChoiBongGeun/DailyQuest/internal/model"

// DefaultWindowMinutes is the half-width of the trigger window around each
// offset. One minute of slack on each side tolerates the scheduler's
// polling granularity without missing the trigger instant.
const DefaultWindowMinutes = 1

// EffectiveOffsets resolves the reminder offsets that apply to a task:
// the per-task list when non-empty, otherwise the global defaults.
func EffectiveOffsets(task model.Task, defaults []int) []int {
	if len(task.ReminderOffsets) > 0 {
		return task.ReminderOffsets
	}
	return defaults
}

// Match returns the offsets whose trigger window [o-window, o+window]
// contains minutesUntilDue. Several offsets may trigger on the same tick;
// each is checked against the dedup ledger separately by the caller.
func Match(minutesUntilDue int, offsets []int, window int) []int {
	var triggered []int
	for _, o := range offsets {
		if minutesUntilDue >= o-window && minutesUntilDue <= o+window {
			triggered = append(triggered, o)
		}
	}
	return triggered
}
