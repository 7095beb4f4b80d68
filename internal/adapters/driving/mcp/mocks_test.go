package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shubhraaj/sitecms/internal/core/domain"
)

// mockContentService is a mock implementation of driving.ContentService.
// Mutations apply to snap so reads reflect them.
type mockContentService struct {
	snap    domain.Snapshot
	states  []domain.SectionStatus
	pullErr error
	err     error

	lastSlug  string
	lastPatch domain.ProjectPatch
	lastIndex int
}

func (m *mockContentService) Pull(_ context.Context) domain.Snapshot { return m.snap.Clone() }

func (m *mockContentService) TryPull(_ context.Context) (domain.Snapshot, error) {
	return m.snap.Clone(), m.pullErr
}

func (m *mockContentService) Snapshot(_ context.Context) domain.Snapshot { return m.snap.Clone() }

func (m *mockContentService) AddProject(_ context.Context, project domain.Project) error {
	if m.err != nil {
		return m.err
	}
	m.snap.Projects = append([]domain.Project{project}, m.snap.Projects...)
	return nil
}

func (m *mockContentService) UpdateProject(_ context.Context, slug string, patch domain.ProjectPatch) error {
	m.lastSlug, m.lastPatch = slug, patch
	return m.err
}

func (m *mockContentService) DeleteProject(_ context.Context, slug string) error {
	m.lastSlug = slug
	return m.err
}

func (m *mockContentService) SetTestimonials(_ context.Context, testimonials []domain.Testimonial) error {
	m.snap.Testimonials = testimonials
	return m.err
}

func (m *mockContentService) AddTestimonial(_ context.Context, testimonial domain.Testimonial) error {
	if m.err != nil {
		return m.err
	}
	m.snap.Testimonials = append(m.snap.Testimonials, testimonial)
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

func (m *mockContentService) SetMapURLs(_ context.Context, locations []domain.MapLocation) error {
	m.snap.Contact.MapURLs = locations
	return m.err
}

func (m *mockContentService) AddMapLocation(_ context.Context) error { return m.err }

func (m *mockContentService) RemoveMapLocation(_ context.Context, index int) error {
	m.lastIndex = index
	return m.err
}

func (m *mockContentService) SyncStates() []domain.SectionStatus { return m.states }

func (m *mockContentService) ImportSnapshot(_ context.Context, _ []byte) error { return m.err }

func (m *mockContentService) Reload(_ context.Context) (bool, error) { return false, m.err }

func (m *mockContentService) ClearCache(_ context.Context) error { return m.err }

func (m *mockContentService) Subscribe(_ func()) func() { return func() {} }

// mockSessionService is a mock implementation of driving.SessionService.
type mockSessionService struct {
	info domain.SessionInfo
	err  error
}

func (m *mockSessionService) Login(_ context.Context, _, _ string) error { return m.err }

func (m *mockSessionService) Logout(_ context.Context) error { return m.err }

func (m *mockSessionService) IsAuthenticated(_ context.Context) bool { return m.info.Authenticated }

func (m *mockSessionService) Info(_ context.Context) domain.SessionInfo { return m.info }

func sampleSnapshot() domain.Snapshot {
	return domain.Snapshot{
		About: domain.About{Intro: "We design homes."},
		Projects: []domain.Project{
			{Slug: "villa", Title: "Villa", Description: "Sea view", Photos: []domain.Photo{{URL: "https://img/1.jpg"}}},
			{Slug: "loft", Title: "Loft", Photos: []domain.Photo{}},
		},
		Testimonials: []domain.Testimonial{{Name: "Asha", Rating: 5, Text: "Lovely"}},
		Contact: domain.Contact{
			Phone:   "+91 99999 00000",
			Email:   "hello@example.com",
			MapURLs: []domain.MapLocation{{Key: "hq", Name: "HQ", URL: "https://maps/hq"}},
		},
	}
}

func newTestServer(t *testing.T, content *mockContentService, session *mockSessionService) *Server {
	t.Helper()
	ports := &Ports{Content: content}
	if session != nil {
		ports.Session = session
	}
	s, err := NewServer(ports)
	require.NoError(t, err)
	return s
}
