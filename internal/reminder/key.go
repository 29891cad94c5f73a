package reminder

import (
	"fmt"

	"github.com/ChoiBongGeun/DailyQuest/internal/model"
)

// Key identifies one delivered reminder: a (task, offset) pair bound to the
// deadline it was computed against. Embedding the due date and time means
// editing a task's deadline re-arms its reminders instead of letting a
// stale entry suppress them.
type Key struct {
	TaskID  int64
	Offset  int
	DueDate string
	DueTime string
}

// NewKey builds the ledger key for one triggered offset of a task.
func NewKey(task model.Task, offset int) Key {
	return Key{
		TaskID:  task.ID,
		Offset:  offset,
		DueDate: task.DueDate,
		DueTime: task.DueTime,
	}
}

// String renders the flat form used at the storage boundary and as the
// OS notification tag.
func (k Key) String() string {
	return fmt.Sprintf("%d-%d-%s-%s", k.TaskID, k.Offset, k.DueDate, k.DueTime)
}
