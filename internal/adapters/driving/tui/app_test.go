package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui/components/status"
	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui/messages"
	"github.com/shubhraaj/sitecms/internal/core/domain"
)

func sampleSnapshot() domain.Snapshot {
	return domain.Snapshot{
		About: domain.About{Intro: "Spaces that feel like home"},
		Projects: []domain.Project{
			{Slug: "villa", Title: "Villa", Photos: []domain.Photo{}},
		},
		Testimonials: []domain.Testimonial{{Name: "Asha", Rating: 5, Text: "Lovely"}},
	}
}

func newTestApp(t *testing.T) (*App, *MockContentService) {
	t.Helper()
	content := &MockContentService{snapshot: sampleSnapshot()}
	app, err := NewApp(&Ports{
		Content: content,
		Session: &MockSessionService{info: domain.SessionInfo{Authenticated: true, Subject: "admin"}},
	})
	require.NoError(t, err)
	t.Cleanup(app.Close)
	app.SetDimensions(100, 30)
	return app, content
}

func press(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewApp_Success(t *testing.T) {
	app, content := newTestApp(t)

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.NotNil(t, content.listener, "subscribes to content changes")
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.ErrorIs(t, err, ErrMissingContentService)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, _ := newTestApp(t)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
}

func TestApp_Init(t *testing.T) {
	app, _ := newTestApp(t)

	assert.NotNil(t, app.Init())
}

func TestApp_View_NotReady(t *testing.T) {
	app, err := NewApp(&Ports{Content: &MockContentService{}})
	require.NoError(t, err)
	defer app.Close()

	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, _ := newTestApp(t)

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "ShubhRaaj Interiors")
}

func TestApp_LoadSnapshot(t *testing.T) {
	app, content := newTestApp(t)
	content.states = []domain.SectionStatus{
		{Section: domain.SectionAbout, State: domain.SectionClean},
		{Section: domain.SectionProjects, State: domain.SectionPendingLocal},
		{Section: domain.SectionContact, State: domain.SectionError},
	}

	msg := app.loadSnapshot()().(messages.SnapshotLoaded)
	assert.Equal(t, "admin", msg.Session.Subject)
	assert.Len(t, msg.States, 3)

	app.Update(msg)

	assert.Equal(t, "Villa", app.Snapshot().Projects[0].Title)
	assert.Equal(t, 2, app.status.Pending())
	assert.Contains(t, app.View(), "2 sections not synced")
}

func TestApp_LoadSnapshotWithLastPull(t *testing.T) {
	content := &MockContentService{snapshot: sampleSnapshot()}
	sched := &MockScheduler{runs: []domain.PullRun{{Finished: time.Now(), Projects: 1}}}
	app, err := NewApp(&Ports{Content: content, Scheduler: sched})
	require.NoError(t, err)
	t.Cleanup(app.Close)

	msg := app.loadSnapshot()().(messages.SnapshotLoaded)
	require.NotNil(t, msg.LastPull)
	assert.Equal(t, 1, msg.LastPull.Projects)

	sched.err = errors.New("disk full")
	msg = app.loadSnapshot()().(messages.SnapshotLoaded)
	assert.Nil(t, msg.LastPull)
}

func TestApp_ContentChangeReloads(t *testing.T) {
	app, content := newTestApp(t)

	content.notify()
	content.notify() // coalesced, must not block

	msg := app.waitForChange()()
	assert.Equal(t, messages.ContentChanged{}, msg)

	_, cmd := app.Update(msg)
	assert.NotNil(t, cmd)
}

func TestApp_CloseStopsWaiting(t *testing.T) {
	app, content := newTestApp(t)

	done := make(chan tea.Msg, 1)
	go func() { done <- app.waitForChange()() }()

	app.Close()
	app.Close()

	select {
	case msg := <-done:
		assert.Nil(t, msg)
	case <-time.After(time.Second):
		t.Fatal("waitForChange did not return after Close")
	}
	assert.True(t, content.unsubscribed)
}

func TestApp_PullKey(t *testing.T) {
	app, content := newTestApp(t)
	content.pullErr = domain.ErrOffline

	_, cmd := app.Update(press("r"))
	require.NotNil(t, cmd)
	assert.Equal(t, status.StatePulling, app.status.State())

	msg := cmd()
	assert.Equal(t, messages.PullCompleted{Err: domain.ErrOffline}, msg)
	assert.Equal(t, 1, content.pulls)

	_, reload := app.Update(msg)
	assert.NotNil(t, reload)
	assert.Equal(t, status.StateOffline, app.status.State())
	assert.Contains(t, app.status.Message(), "Using cached content")
	assert.ErrorIs(t, app.Err(), domain.ErrOffline)
}

func TestApp_PullSucceeded(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(messages.PullCompleted{})

	assert.Equal(t, status.StateReady, app.status.State())
	assert.Equal(t, "Content updated", app.status.Message())
	assert.NoError(t, app.Err())
}

func TestApp_GlobalKeys(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(press("?"))
	assert.Equal(t, messages.ViewHelp, app.CurrentView())
	assert.Contains(t, app.View(), "pull from server")
	assert.Contains(t, app.View(), "saved locally")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewMenu, app.CurrentView())

	_, cmd := app.Update(press("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_MenuNavigation(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(press("j"))
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	assert.Equal(t, messages.ViewChanged{View: messages.ViewProjects}, msg)

	app.Update(msg)
	assert.Equal(t, messages.ViewProjects, app.CurrentView())
}

func TestApp_CapturingViewGetsKeys(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(messages.ViewChanged{View: messages.ViewProjects})

	app.Update(press("a"))
	require.True(t, app.capturing())

	app.Update(press("q"))
	app.Update(press("r"))

	assert.Equal(t, messages.ViewProjects, app.CurrentView())
	assert.NotEqual(t, status.StatePulling, app.status.State(), "pull key typed into the field")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, app.capturing())
	assert.Equal(t, messages.ViewProjects, app.CurrentView(), "esc cancels the input first")
}

func TestApp_ContentSaved(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(messages.ContentSaved{Section: domain.SectionProjects, Action: `Added "villa"`})
	assert.NotNil(t, cmd)
	assert.Equal(t, status.StateReady, app.status.State())
	assert.Equal(t, `Added "villa"`, app.status.Message())

	app.Update(messages.ContentSaved{Section: domain.SectionProjects, Err: domain.ErrAlreadyExists})
	assert.Equal(t, status.StateError, app.status.State())
	assert.ErrorIs(t, app.Err(), domain.ErrAlreadyExists)
}

func TestApp_ErrorOccurred(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, app.Err(), "boom")
	assert.Equal(t, "boom", app.status.Message())
}

func TestApp_SettingsViewLoads(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewSettings})
	require.NotNil(t, cmd)

	msg := cmd()
	loaded, ok := msg.(messages.SettingsLoaded)
	require.True(t, ok)
	assert.Error(t, loaded.Err, "no settings service configured")

	app.Update(msg)
	assert.Contains(t, app.View(), "settings service not available")
}

func TestApp_QuitMessage(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_EveryViewRenders(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(app.loadSnapshot()())

	views := []messages.ViewType{
		messages.ViewOverview, messages.ViewProjects, messages.ViewTestimonials,
		messages.ViewContact, messages.ViewSettings, messages.ViewHelp,
	}
	for _, v := range views {
		app.Update(messages.ViewChanged{View: v})
		assert.NotEmpty(t, app.View(), v.String())
	}
}
