// Package messages holds the tea.Msg types passed between the app and its views.
package messages

import (
	"github.com/shubhraaj/sitecms/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies a screen.
type ViewType int

const (
	ViewMenu ViewType = iota
	ViewOverview
	ViewProjects
	ViewTestimonials
	ViewContact
	ViewSettings
	ViewHelp
)

var viewNames = [...]string{"menu", "overview", "projects", "testimonials", "contact", "settings", "help"}

func (v ViewType) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return "unknown"
	}
	return viewNames[v]
}

// ContentChanged is sent when the content service reports a committed change.
type ContentChanged struct{}

// SnapshotLoaded carries the local snapshot and its sync state. LastPull is
// nil when no background pull has run or no scheduler is wired.
type SnapshotLoaded struct {
	Snapshot domain.Snapshot
	States   []domain.SectionStatus
	Session  domain.SessionInfo
	LastPull *domain.PullRun
}

// PullRequested asks the app to refresh from the content API.
type PullRequested struct{}

// PullCompleted signals a pull finished. Err is set when the API could
// not be reached; the cached snapshot is still current.
type PullCompleted struct {
	Err error
}

// ContentSaved signals an edit finished.
type ContentSaved struct {
	Section domain.Section
	Action  string
	Err     error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals a setting was stored.
type SettingsSaved struct {
	Key string
	Err error
}
