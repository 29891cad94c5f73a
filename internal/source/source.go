package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/ChoiBongGeun/DailyQuest/internal/model"
)

// AuthError indicates that authentication has failed or expired against the
// backend. It is returned by the client when a 401 response is received.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error: %s", e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// Snapshot is one full sync of the near-term task lists the client cares
// about. Buckets may legitimately be empty.
type Snapshot struct {
	Today   []model.Task
	Week    []model.Task
	Overdue []model.Task
}

// Source defines the contract the sync poller drives. The production
// implementation talks to the DailyQuest REST backend; tests substitute
// a fixture.
type Source interface {
	// ValidateConnection verifies credentials and connectivity.
	// Returns a human-readable status message on success.
	ValidateConnection(ctx context.Context) (string, error)

	// FetchSnapshot retrieves the today, week, and overdue task lists.
	FetchSnapshot(ctx context.Context) (*Snapshot, error)

	// FetchProjects retrieves the user's projects for display.
	FetchProjects(ctx context.Context) ([]model.Project, error)
}
