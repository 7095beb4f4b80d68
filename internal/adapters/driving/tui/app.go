package tui

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui/components/status"
	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui/keymap"
	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui/messages"
	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui/styles"
	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui/views/contact"
	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui/views/menu"
	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui/views/overview"
	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui/views/projects"
	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui/views/settings"
	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui/views/testimonials"
	"github.com/shubhraaj/sitecms/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for service calls.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	status *status.Bar

	menuView         *menu.View
	overviewView     *overview.View
	projectsView     *projects.View
	testimonialsView *testimonials.View
	contactView      *contact.View
	settingsView     *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// snapshot is the last loaded content.
	snapshot domain.Snapshot

	// changes receives a signal for every committed content change.
	changes     chan struct{}
	done        chan struct{}
	unsubscribe func()
	closeOnce   sync.Once

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
// The app subscribes to content changes until Close is called.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:            ports,
		ctx:              context.Background(),
		styles:           s,
		keymap:           km,
		status:           status.NewBar(s, km),
		menuView:         menu.NewView(s),
		overviewView:     overview.NewView(s),
		projectsView:     projects.NewView(s, ports.Content),
		testimonialsView: testimonials.NewView(s, ports.Content),
		contactView:      contact.NewView(s, ports.Content),
		settingsView:     settings.NewView(s, ports.Settings),
		currentView:      messages.ViewMenu,
		changes:          make(chan struct{}, 1),
		done:             make(chan struct{}),
	}

	a.unsubscribe = ports.Content.Subscribe(func() {
		select {
		case a.changes <- struct{}{}:
		default:
			// A reload is already queued.
		}
	})

	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Close unsubscribes from content changes. It is safe to call more than once.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		a.unsubscribe()
		close(a.done)
	})
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("ShubhRaaj Interiors CMS"),
		a.loadSnapshot(),
		a.waitForChange(),
	)
}

// loadSnapshot reads the local snapshot and sync state.
func (a *App) loadSnapshot() tea.Cmd {
	return func() tea.Msg {
		msg := messages.SnapshotLoaded{
			Snapshot: a.ports.Content.Snapshot(a.ctx),
			States:   a.ports.Content.SyncStates(),
		}
		if a.ports.Session != nil {
			msg.Session = a.ports.Session.Info(a.ctx)
		}
		if a.ports.Scheduler != nil {
			if runs, err := a.ports.Scheduler.History(a.ctx, 1); err == nil && len(runs) > 0 {
				msg.LastPull = &runs[0]
			}
		}
		return msg
	}
}

// waitForChange blocks until the content service reports a change or the app closes.
func (a *App) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-a.changes:
			return messages.ContentChanged{}
		case <-a.done:
			return nil
		}
	}
}

// pull refreshes from the content API.
func (a *App) pull() tea.Cmd {
	return func() tea.Msg {
		_, err := a.ports.Content.TryPull(a.ctx)
		return messages.PullCompleted{Err: err}
	}
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewSettings {
			return a, a.settingsView.Init()
		}
		return a, nil

	case messages.ContentChanged:
		return a, tea.Batch(a.loadSnapshot(), a.waitForChange())

	case messages.SnapshotLoaded:
		a.applySnapshot(msg)
		return a, nil

	case messages.PullRequested:
		a.status.Show(status.StatePulling, "Pulling content...")
		return a, a.pull()

	case messages.PullCompleted:
		if msg.Err != nil {
			a.err = msg.Err
			a.status.Show(status.StateOffline, "Using cached content: "+msg.Err.Error())
		} else {
			a.err = nil
			a.status.Show(status.StateReady, "Content updated")
		}
		return a, a.loadSnapshot()

	case messages.ContentSaved:
		if msg.Err != nil {
			a.err = msg.Err
			a.status.Show(status.StateError, msg.Err.Error())
		} else {
			a.err = nil
			a.status.Show(status.StateReady, msg.Action)
		}
		if msg.Section == domain.SectionProjects {
			a.projectsView, cmd = a.projectsView.Update(msg)
		}
		return a, tea.Batch(cmd, a.loadSnapshot())

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.status.Show(status.StateError, msg.Err.Error())
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

// handleKey applies global keys unless the active view is capturing input.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if a.capturing() {
		return a, a.forward(msg)
	}

	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keymap.Pull):
		return a.Update(messages.PullRequested{})
	case key.Matches(msg, a.keymap.Help):
		a.currentView = messages.ViewHelp
		return a, nil
	case key.Matches(msg, a.keymap.Back):
		a.currentView = messages.ViewMenu
		a.status.Show(status.StateReady, "")
		return a, nil
	}

	return a, a.forward(msg)
}

// capturing reports whether the active view consumes all keys.
func (a *App) capturing() bool {
	switch a.currentView { //nolint:exhaustive // only editing views capture
	case messages.ViewProjects:
		return a.projectsView.Capturing()
	case messages.ViewTestimonials:
		return a.testimonialsView.Capturing()
	case messages.ViewContact:
		return a.contactView.Capturing()
	}
	return false
}

// forward passes msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewOverview:
		a.overviewView, cmd = a.overviewView.Update(msg)
	case messages.ViewProjects:
		a.projectsView, cmd = a.projectsView.Update(msg)
	case messages.ViewTestimonials:
		a.testimonialsView, cmd = a.testimonialsView.Update(msg)
	case messages.ViewContact:
		a.contactView, cmd = a.contactView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		// Help is static.
	}
	return cmd
}

// applySnapshot pushes loaded content into every view.
func (a *App) applySnapshot(msg messages.SnapshotLoaded) {
	a.snapshot = msg.Snapshot
	a.overviewView.SetData(msg.Snapshot, msg.States, msg.Session)
	a.overviewView.SetLastPull(msg.LastPull)
	a.projectsView.SetProjects(msg.Snapshot.Projects)
	a.testimonialsView.SetTestimonials(msg.Snapshot.Testimonials)
	a.contactView.SetContact(msg.Snapshot.Contact)
	a.menuView.SetStates(msg.States)

	pending := 0
	for _, st := range msg.States {
		if st.State != domain.SectionClean {
			pending++
		}
	}
	a.status.SetPending(pending)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewMenu:
		body = a.menuView.View()
	case messages.ViewOverview:
		body = a.overviewView.View()
	case messages.ViewProjects:
		body = a.projectsView.View()
	case messages.ViewTestimonials:
		body = a.testimonialsView.View()
	case messages.ViewContact:
		body = a.contactView.View()
	case messages.ViewSettings:
		body = a.settingsView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}

	return body + "\n\n" + a.status.View()
}

// viewHelp renders the key bindings and how offline edits behave.
func (a *App) viewHelp() string {
	h := help.New()
	h.ShowAll = true
	h.FullSeparator = "    "

	return a.styles.Title.Render("Help") + "\n\n" +
		h.View(a.keymap) + "\n\n" +
		a.styles.Muted.Render("Digits open menu entries. Edits are sent to the server first. When it\n"+
			"cannot be reached they are kept in the local cache and shown as \"saved locally\".") +
		"\n\n" + a.styles.Help.Render("[esc] back to menu")
}

// Run starts the TUI application and closes it on exit.
func (a *App) Run() error {
	defer a.Close()
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Snapshot returns the last loaded content.
func (a *App) Snapshot() domain.Snapshot {
	return a.snapshot
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	// Leave room for the status bar.
	body := max(height-2, 1)
	a.menuView.SetDimensions(width, body)
	a.overviewView.SetDimensions(width, body)
	a.projectsView.SetDimensions(width, body)
	a.testimonialsView.SetDimensions(width, body)
	a.contactView.SetDimensions(width, body)
	a.settingsView.SetDimensions(width, body)
	a.status.SetWidth(width)
}
