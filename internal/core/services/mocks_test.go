package services

import (
	"context"
	"errors"
	"sync"

	"github.com/shubhraaj/sitecms/internal/core/domain"
	"github.com/shubhraaj/sitecms/internal/core/ports/driven"
)

// Ensure mocks implement interfaces
var (
	_ driven.ContentCache   = (*mockCache)(nil)
	_ driven.ContentGateway = (*mockGateway)(nil)
	_ driven.ImageUploader  = (*mockUploader)(nil)
)

// mockCache is an in-memory ContentCache with error injection.
type mockCache struct {
	mu         sync.Mutex
	snapshot   []byte
	hasSnap    bool
	token      string
	hasToken   bool
	readErr    error
	writeErr   error
	tokenErr   error
	writes     int
	clearCalls int

	// onRead runs once, after the next ReadSnapshot has copied the bytes.
	onRead func()
}

func newMockCache() *mockCache {
	return &mockCache{}
}

func (m *mockCache) seed(raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = []byte(raw)
	m.hasSnap = true
}

func (m *mockCache) raw() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.snapshot...)
}

func (m *mockCache) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *mockCache) ReadSnapshot(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	if m.readErr != nil {
		m.mu.Unlock()
		return nil, &domain.StorageError{Op: "read snapshot", Err: m.readErr}
	}
	if !m.hasSnap {
		m.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	raw := append([]byte(nil), m.snapshot...)
	hook := m.onRead
	m.onRead = nil
	m.mu.Unlock()

	if hook != nil {
		hook()
	}
	return raw, nil
}

func (m *mockCache) WriteSnapshot(_ context.Context, raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return &domain.StorageError{Op: "write snapshot", Err: m.writeErr}
	}
	m.snapshot = append([]byte(nil), raw...)
	m.hasSnap = true
	m.writes++
	return nil
}

func (m *mockCache) ClearSnapshot(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = nil
	m.hasSnap = false
	m.clearCalls++
	return nil
}

func (m *mockCache) ReadCredential(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tokenErr != nil {
		return "", &domain.StorageError{Op: "read credential", Err: m.tokenErr}
	}
	if !m.hasToken {
		return "", domain.ErrNotFound
	}
	return m.token, nil
}

func (m *mockCache) WriteCredential(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tokenErr != nil {
		return &domain.StorageError{Op: "write credential", Err: m.tokenErr}
	}
	m.token = token
	m.hasToken = true
	return nil
}

func (m *mockCache) ClearCredential(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.hasToken = false
	return nil
}

func (m *mockCache) Close() error { return nil }

var errOffline = &domain.NetworkError{Op: "PATCH /api/projects", Err: errors.New("connection refused")}

// mockGateway records calls and returns configured responses.
// A nil echo value means "return what was sent with ok=false".
type mockGateway struct {
	mu sync.Mutex

	snapshot []byte
	fetchErr error

	token    string
	loginErr error

	saveErr error
	calls   map[string]int

	projectsReply     []domain.Project
	testimonialsReply []domain.Testimonial
	aboutReply        *domain.About
	contactReply      *domain.Contact

	lastProjects     []domain.Project
	lastTestimonials []domain.Testimonial
	lastAbout        domain.About
	lastContact      domain.Contact
	onSave           func()
}

func newMockGateway() *mockGateway {
	return &mockGateway{calls: make(map[string]int)}
}

func (g *mockGateway) record(name string) {
	g.calls[name]++
	if g.onSave != nil {
		g.onSave()
	}
}

func (g *mockGateway) count(name string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[name]
}

func (g *mockGateway) FetchSnapshot(_ context.Context) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls["fetch"]++
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	return g.snapshot, nil
}

func (g *mockGateway) Login(_ context.Context, _, _ string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls["login"]++
	return g.token, g.loginErr
}

func (g *mockGateway) SaveProjects(_ context.Context, projects []domain.Project) ([]domain.Project, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("projects")
	g.lastProjects = domain.CloneProjects(projects)
	if g.saveErr != nil {
		return nil, false, g.saveErr
	}
	if g.projectsReply != nil {
		return g.projectsReply, true, nil
	}
	return nil, false, nil
}

func (g *mockGateway) SaveTestimonials(
	_ context.Context,
	testimonials []domain.Testimonial,
) ([]domain.Testimonial, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("testimonials")
	g.lastTestimonials = append([]domain.Testimonial(nil), testimonials...)
	if g.saveErr != nil {
		return nil, false, g.saveErr
	}
	if g.testimonialsReply != nil {
		return g.testimonialsReply, true, nil
	}
	return nil, false, nil
}

func (g *mockGateway) SaveAbout(_ context.Context, about domain.About) (domain.About, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("about")
	g.lastAbout = about
	if g.saveErr != nil {
		return domain.About{}, false, g.saveErr
	}
	if g.aboutReply != nil {
		return *g.aboutReply, true, nil
	}
	return domain.About{}, false, nil
}

func (g *mockGateway) SaveContact(_ context.Context, contact domain.Contact) (domain.Contact, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("contact")
	g.lastContact = contact.Clone()
	if g.saveErr != nil {
		return domain.Contact{}, false, g.saveErr
	}
	if g.contactReply != nil {
		return *g.contactReply, true, nil
	}
	return domain.Contact{}, false, nil
}

// mockUploader returns photos named after the folder and file.
type mockUploader struct {
	folders []string
	err     error
}

func (u *mockUploader) Upload(_ context.Context, folder string, file domain.UploadFile) (domain.Photo, error) {
	if u.err != nil {
		return domain.Photo{}, u.err
	}
	u.folders = append(u.folders, folder)
	id := folder + "/" + file.Name
	return domain.Photo{URL: "https://cdn.test/" + id, ExternalID: id}, nil
}

// counter counts notifications.
type counter struct {
	mu sync.Mutex
	n  int
}

func (c *counter) inc() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *counter) get() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}
