package reminder

import (
	"strconv"
	"strings"
	"time"
)

// Evaluate computes the whole minutes remaining until a task's deadline.
// dueDate must be YYYY-MM-DD and dueTime HH:MM, both local wall-clock.
// ok is false when either field is malformed or the deadline is not
// strictly in the future; such tasks are skipped without error.
func Evaluate(now time.Time, dueDate, dueTime string) (minutesUntilDue int, ok bool) {
	dateParts := strings.Split(dueDate, "-")
	timeParts := strings.Split(dueTime, ":")
	if len(dateParts) != 3 || len(timeParts) != 2 {
		return 0, false
	}

	year, err := strconv.Atoi(dateParts[0])
	if err != nil {
		return 0, false
	}
	month, err := strconv.Atoi(dateParts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, false
	}
	day, err := strconv.Atoi(dateParts[2])
	if err != nil || day < 1 || day > 31 {
		return 0, false
	}
	hour, err := strconv.Atoi(timeParts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(timeParts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}

	due := time.Date(year, time.Month(month), day, hour, minute, 0, 0, now.Location())
	if !due.After(now) {
		return 0, false
	}

	return int(due.Sub(now).Milliseconds() / (1000 * 60)), true
}
