// Package notify raises OS-level desktop notifications through the
// platform's notifier command. Delivery is strictly best-effort: the
// reminder engine's toast channel remains the guaranteed path and every
// failure here is swallowed by the caller.
package notify

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/ChoiBongGeun/DailyQuest/internal/reminder"
)

// ErrUnavailable is returned by Raise when no platform notifier exists.
var ErrUnavailable = errors.New("notify: no desktop notifier available")

// Desktop raises notifications via notify-send on Linux and osascript on
// macOS. Other platforms report unavailable.
type Desktop struct {
	binary string
}

// NewDesktop probes the platform for a usable notifier command.
func NewDesktop() *Desktop {
	var candidate string
	switch runtime.GOOS {
	case "linux":
		candidate = "notify-send"
	case "darwin":
		candidate = "osascript"
	}

	if candidate == "" {
		return &Desktop{}
	}
	if _, err := exec.LookPath(candidate); err != nil {
		return &Desktop{}
	}
	return &Desktop{binary: candidate}
}

// Available reports whether a notifier command was found.
func (d *Desktop) Available() bool {
	return d.binary != ""
}

// Probe maps notifier availability onto a permission state: a desktop
// client has no browser-style prompt, so "requesting permission" resolves
// immediately against what the platform offers.
func (d *Desktop) Probe() reminder.Permission {
	if d.Available() {
		return reminder.PermissionGranted
	}
	return reminder.PermissionDenied
}

// Raise shows one desktop notification. The tag is passed as a replace
// hint where the platform supports it, so duplicate raises with the same
// tag collapse into a single visible notification.
func (d *Desktop) Raise(title, body, tag string) error {
	switch d.binary {
	case "notify-send":
		cmd := exec.Command(d.binary,
			"--hint", "string:x-canonical-private-synchronous:"+tag,
			title, body,
		)
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("notify: raising notification: %w", err)
		}
		return nil

	case "osascript":
		script := fmt.Sprintf(
			"display notification %q with title %q", body, title,
		)
		cmd := exec.Command(d.binary, "-e", script)
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("notify: raising notification: %w", err)
		}
		return nil

	default:
		return ErrUnavailable
	}
}
