package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/shubhraaj/sitecms/internal/core/domain"
	"github.com/shubhraaj/sitecms/internal/core/ports/driving"
)

// mockContentService is an in-memory driving.ContentService.
type mockContentService struct {
	snap     domain.Snapshot
	states   []domain.SectionStatus
	pullErr  error
	err      error
	imported []byte
	cleared  bool

	lastSlug  string
	lastPatch domain.ProjectPatch
	lastIndex int
}

var _ driving.ContentService = (*mockContentService)(nil)

func (m *mockContentService) Pull(_ context.Context) domain.Snapshot { return m.snap }

func (m *mockContentService) TryPull(_ context.Context) (domain.Snapshot, error) {
	return m.snap, m.pullErr
}

func (m *mockContentService) Snapshot(_ context.Context) domain.Snapshot { return m.snap.Clone() }

func (m *mockContentService) AddProject(_ context.Context, p domain.Project) error {
	if m.err != nil {
		return m.err
	}
	m.snap.Projects = append([]domain.Project{p}, m.snap.Projects...)
	return nil
}

func (m *mockContentService) UpdateProject(_ context.Context, slug string, patch domain.ProjectPatch) error {
	m.lastSlug = slug
	m.lastPatch = patch
	return m.err
}

func (m *mockContentService) DeleteProject(_ context.Context, slug string) error {
	m.lastSlug = slug
	return m.err
}

func (m *mockContentService) SetTestimonials(_ context.Context, t []domain.Testimonial) error {
	m.snap.Testimonials = t
	return m.err
}

func (m *mockContentService) AddTestimonial(_ context.Context, t domain.Testimonial) error {
	if m.err != nil {
		return m.err
	}
	m.snap.Testimonials = append(m.snap.Testimonials, t)
	return nil
}

func (m *mockContentService) RemoveTestimonial(_ context.Context, index int) error {
	m.lastIndex = index
	return m.err
}

func (m *mockContentService) SetAbout(_ context.Context, about domain.About) error {
	if m.err != nil {
		return m.err
	}
	m.snap.About = about
	return nil
}

func (m *mockContentService) SetContact(_ context.Context, contact domain.Contact) error {
	if m.err != nil {
		return m.err
	}
	m.snap.Contact = contact
	return nil
}

func (m *mockContentService) SetMapURLs(_ context.Context, maps []domain.MapLocation) error {
	if m.err != nil {
		return m.err
	}
	m.snap.Contact.MapURLs = maps
	return nil
}

func (m *mockContentService) AddMapLocation(_ context.Context) error {
	if m.err != nil {
		return m.err
	}
	m.snap.Contact.MapURLs = append(m.snap.Contact.MapURLs, domain.MapLocation{})
	return nil
}

func (m *mockContentService) RemoveMapLocation(_ context.Context, index int) error {
	m.lastIndex = index
	return m.err
}

func (m *mockContentService) SyncStates() []domain.SectionStatus { return m.states }

func (m *mockContentService) ImportSnapshot(_ context.Context, raw []byte) error {
	m.imported = raw
	return m.err
}

func (m *mockContentService) Reload(_ context.Context) (bool, error) { return false, nil }

func (m *mockContentService) ClearCache(_ context.Context) error {
	m.cleared = true
	return m.err
}

func (m *mockContentService) Subscribe(_ func()) func() { return func() {} }

// mockSessionService implements driving.SessionService.
type mockSessionService struct {
	info     domain.SessionInfo
	loginErr error
	username string
	password string
	logouts  int
}

func (m *mockSessionService) Login(_ context.Context, username, password string) error {
	m.username, m.password = username, password
	return m.loginErr
}

func (m *mockSessionService) Logout(_ context.Context) error {
	m.logouts++
	return nil
}

func (m *mockSessionService) IsAuthenticated(_ context.Context) bool { return m.info.Authenticated }

func (m *mockSessionService) Info(_ context.Context) domain.SessionInfo { return m.info }

// mockMediaService implements driving.MediaService.
type mockMediaService struct {
	available bool
	title     string
	files     []domain.UploadFile
	bodies    []string
}

func (m *mockMediaService) UploadProjectPhotos(
	_ context.Context, title string, files []domain.UploadFile,
) ([]domain.Photo, error) {
	m.title = title
	m.files = files
	photos := make([]domain.Photo, len(files))
	for i, f := range files {
		body, _ := io.ReadAll(f.Body)
		m.bodies = append(m.bodies, string(body))
		photos[i] = domain.Photo{URL: "https://img.example/" + f.Name}
	}
	return photos, nil
}

func (m *mockMediaService) Available() bool { return m.available }

// mockSettingsService implements driving.SettingsService.
type mockSettingsService struct {
	settings    domain.AppSettings
	validateErr error
	setErr      error
	set         map[string]string
	unset       []string
}

func newMockSettings() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultAppSettings(), set: map[string]string{}}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(s *domain.AppSettings) error {
	m.settings = *s
	return nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) Unset(key string) error {
	m.unset = append(m.unset, key)
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{"api.base_url", "sync.policy"}
}

func (m *mockSettingsService) Validate() error { return m.validateErr }

func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

// mockScheduler records Start and Stop.
type mockScheduler struct {
	started atomic.Bool
	stopped atomic.Bool
	runs    []domain.PullRun
	err     error
}

func (m *mockScheduler) Start(ctx context.Context) error {
	m.started.Store(true)
	<-ctx.Done()
	return nil
}

func (m *mockScheduler) Stop() error {
	m.stopped.Store(true)
	return nil
}

func (m *mockScheduler) History(_ context.Context, limit int) ([]domain.PullRun, error) {
	if limit > 0 && len(m.runs) > limit {
		return m.runs[:limit], m.err
	}
	return m.runs, m.err
}

// mockRunner blocks until cancelled.
type mockRunner struct {
	ran atomic.Bool
}

func (m *mockRunner) Run(ctx context.Context) error {
	m.ran.Store(true)
	<-ctx.Done()
	return nil
}

// useServices installs s for the duration of the test.
func useServices(t *testing.T, s *Services) {
	t.Helper()
	SetServices(s)
	t.Cleanup(func() { SetServices(&Services{}) })
}

// resetFlags restores every flag to its default so state does not leak between tests.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace([]string{})
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the root command with args and returns its combined output.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func sampleSnapshot() domain.Snapshot {
	return domain.Snapshot{
		About: domain.About{Intro: "We design homes", Mission: "Craft"},
		Projects: []domain.Project{
			{Slug: "villa", Title: "Villa", Description: "Sea view", Photos: []domain.Photo{{URL: "https://img/1.jpg"}}},
			{Slug: "loft", Title: "Loft", Photos: []domain.Photo{}},
		},
		Testimonials: []domain.Testimonial{{Name: "Asha", Rating: 5, Text: "Wonderful"}},
		Contact: domain.Contact{
			Phone: "+91 98765 43210",
			Email: "hello@shubhraaj.com",
			MapURLs: []domain.MapLocation{
				{Key: "hq", Name: "Head office", URL: "https://maps/hq"},
			},
		},
	}
}
