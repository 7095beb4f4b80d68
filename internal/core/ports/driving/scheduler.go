package driving

import (
	"context"

	"github.com/shubhraaj/sitecms/internal/core/domain"
)

// Scheduler pulls content in the background while a long-running
// command (serve, tui, mcp) is up.
type Scheduler interface {
	// Start runs due pulls until ctx is cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop ends a running Start and waits for an in-flight pull.
	Stop() error

	// History returns up to limit recent background pulls, newest first.
	History(ctx context.Context, limit int) ([]domain.PullRun, error)
}
