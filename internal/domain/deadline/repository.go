package deadline

import (
	"context"
	"time"
)

// Repository defines the read-only deadline queries against the ERP's
// persistence layer. Implementations apply the terminal-status and window
// filters server-side; callers still re-check with Due before alerting.
type Repository interface {
	// ListExpiring returns the active subjects of the given kind whose
	// reference date falls within [today, today+windowDays].
	ListExpiring(ctx context.Context, kind Kind, today time.Time, windowDays int) ([]Subject, error)
}
