// Package tui is the bubbletea editor for the site content.
package tui

import (
	"github.com/shubhraaj/sitecms/internal/core/ports/driving"
)

// Ports are the services the TUI drives. Only Content is required; the
// overview hides the session and background pull when theirs are missing,
// and the settings view reports that it is unavailable.
type Ports struct {
	Content   driving.ContentService
	Session   driving.SessionService
	Settings  driving.SettingsService
	Scheduler driving.Scheduler
}

// Validate reports a nil Ports or a missing content service.
func (p *Ports) Validate() error {
	switch {
	case p == nil:
		return ErrInvalidPorts
	case p.Content == nil:
		return ErrMissingContentService
	}
	return nil
}
