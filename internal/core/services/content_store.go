package services

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/shubhraaj/sitecms/internal/core/domain"
	"github.com/shubhraaj/sitecms/internal/core/ports/driven"
	"github.com/shubhraaj/sitecms/internal/core/ports/driving"
	"github.com/shubhraaj/sitecms/internal/logger"
	"github.com/shubhraaj/sitecms/internal/metrics"
)

// Ensure ContentStore implements the interface.
var _ driving.ContentService = (*ContentStore)(nil)

// ContentStore reconciles the remote content API with the local cache.
//
// Every operation that may write the cache runs under one mutex, so
// read-modify-write cycles never interleave. Listeners are notified after
// the mutex is released and may call back into the store.
type ContentStore struct {
	cache    driven.ContentCache
	gateway  driven.ContentGateway
	notifier *Notifier
	policy   domain.SyncPolicy
	strip    *bluemonday.Policy
	now      func() time.Time
	log      zerolog.Logger

	mu sync.Mutex
	// digest of the cache bytes last written or reloaded; guarded by mu
	digest   [sha256.Size]byte
	digested bool

	stateMu sync.RWMutex
	states  map[domain.Section]domain.SectionStatus
}

// ContentStoreOption configures a ContentStore.
type ContentStoreOption func(*ContentStore)

// WithSyncPolicy sets how mutations behave when the server write fails.
func WithSyncPolicy(p domain.SyncPolicy) ContentStoreOption {
	return func(s *ContentStore) {
		if p.IsValid() {
			s.policy = p
		}
	}
}

// WithNotifier shares an existing notifier, e.g. with the session manager.
func WithNotifier(n *Notifier) ContentStoreOption {
	return func(s *ContentStore) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithClock overrides the time source used for sync state timestamps.
func WithClock(now func() time.Time) ContentStoreOption {
	return func(s *ContentStore) {
		s.now = now
	}
}

// NewContentStore creates a content store over a cache and gateway.
func NewContentStore(
	cache driven.ContentCache,
	gateway driven.ContentGateway,
	opts ...ContentStoreOption,
) *ContentStore {
	s := &ContentStore{
		cache:    cache,
		gateway:  gateway,
		notifier: NewNotifier(),
		policy:   domain.SyncPolicyFallbackLocal,
		strip:    bluemonday.StrictPolicy(),
		now:      time.Now,
		log:      logger.WithComponent("content-store"),
		states:   make(map[domain.Section]domain.SectionStatus),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Notifier returns the change notifier owned by the store.
func (s *ContentStore) Notifier() *Notifier {
	return s.notifier
}

// Subscribe registers a listener fired after every committed change.
func (s *ContentStore) Subscribe(listener func()) func() {
	return s.notifier.Subscribe(listener)
}

// Policy returns the active sync policy.
func (s *ContentStore) Policy() domain.SyncPolicy {
	return s.policy
}

// Pull fetches the remote snapshot and caches it verbatim.
// Any failure falls back to the local snapshot.
func (s *ContentStore) Pull(ctx context.Context) domain.Snapshot {
	snap, _ := s.TryPull(ctx)
	return snap
}

// TryPull behaves like Pull but also reports why the remote snapshot could
// not be fetched or cached. The returned snapshot is always usable.
func (s *ContentStore) TryPull(ctx context.Context) (domain.Snapshot, error) {
	raw, err := s.gateway.FetchSnapshot(ctx)
	if err == nil && !isJSONObject(raw) {
		err = fmt.Errorf("fetch snapshot: %w", domain.ErrInvalidInput)
	}
	if err != nil {
		s.log.Debug().Err(err).Msg("pull failed, serving local snapshot")
		metrics.PullsTotal.WithLabelValues("local").Inc()
		return s.Snapshot(ctx), err
	}
	metrics.PullsTotal.WithLabelValues("remote").Inc()

	s.mu.Lock()
	err = s.writeRaw(ctx, raw)
	if err == nil {
		s.markAll(domain.SectionClean)
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Error().Err(err).Msg("caching pulled snapshot failed")
		return domain.Migrate(raw), fmt.Errorf("cache pulled snapshot: %w", err)
	}

	s.log.Debug().Int("bytes", len(raw)).Msg("pulled remote snapshot")
	s.notifier.Notify()
	return domain.Migrate(raw), nil
}

// Snapshot returns the local snapshot. A stale cache shape is repaired and
// persisted; an unreadable cache yields in-memory defaults.
func (s *ContentStore) Snapshot(ctx context.Context) domain.Snapshot {
	if raw, err := s.cache.ReadSnapshot(ctx); err == nil {
		if _, changed := domain.MigrateRaw(raw); !changed {
			return domain.Migrate(raw)
		}
	}

	s.mu.Lock()
	snap, _, healed := s.localLocked(ctx)
	s.mu.Unlock()

	if healed {
		s.notifier.Notify()
	}
	return snap
}

// localLocked reads and migrates the cache (caller must hold mu).
// It reports whether a repaired snapshot was written back.
func (s *ContentStore) localLocked(ctx context.Context) (domain.Snapshot, []byte, bool) {
	raw, err := s.cache.ReadSnapshot(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.log.Warn().Err(err).Msg("cache unreadable, using defaults for this session")
		return domain.DefaultSnapshot(), nil, false
	}

	migrated, changed := domain.MigrateRaw(raw)
	if changed {
		if err := s.writeRaw(ctx, migrated); err != nil {
			s.log.Warn().Err(err).Msg("persisting migrated snapshot failed")
			changed = false
		} else {
			s.log.Debug().Msg("repaired cached snapshot shape")
		}
	}
	return domain.Migrate(migrated), migrated, changed
}

// ClearCache drops the cached snapshot.
func (s *ContentStore) ClearCache(ctx context.Context) error {
	s.mu.Lock()
	err := s.cache.ClearSnapshot(ctx)
	if err == nil {
		s.digest, s.digested = sha256.Sum256(nil), true
		s.markAll(domain.SectionClean)
	}
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	s.notifier.Notify()
	return nil
}

// ImportSnapshot replaces the cached snapshot with raw, a JSON document in
// any supported shape. The server is not contacted; every section is
// marked pending_local.
func (s *ContentStore) ImportSnapshot(ctx context.Context, raw []byte) error {
	if !isJSONObject(raw) {
		return fmt.Errorf("import snapshot: %w", domain.ErrInvalidInput)
	}
	migrated, _ := domain.MigrateRaw(raw)

	s.mu.Lock()
	err := s.writeRaw(ctx, migrated)
	if err == nil {
		s.markAll(domain.SectionPendingLocal)
	}
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("import snapshot: %w", err)
	}
	s.notifier.Notify()
	return nil
}

// Reload re-reads the cache after an external change and notifies
// listeners when its contents differ from what this store last saw.
// The first call only records the current contents.
func (s *ContentStore) Reload(ctx context.Context) (bool, error) {
	// Read under mu so a mutation cannot commit between the read and the
	// digest update.
	s.mu.Lock()
	raw, err := s.cache.ReadSnapshot(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.mu.Unlock()
		return false, fmt.Errorf("reload cache: %w", err)
	}
	sum := sha256.Sum256(raw)
	first := !s.digested
	changed := !first && sum != s.digest
	s.digest, s.digested = sum, true
	s.mu.Unlock()

	if changed {
		s.log.Debug().Msg("cache changed externally")
		s.notifier.Notify()
	}
	return changed, nil
}

// AddProject inserts a project at the front of the list.
// An empty slug is derived from the title.
func (s *ContentStore) AddProject(ctx context.Context, project domain.Project) error {
	project = s.cleanProject(project)
	if project.Slug == "" {
		project.Slug = domain.Slugify(project.Title)
	} else {
		project.Slug = domain.Slugify(project.Slug)
	}
	if strings.TrimSpace(project.Title) == "" || project.Slug == "" {
		return fmt.Errorf("project title and slug are required: %w", domain.ErrInvalidInput)
	}

	return mutate(ctx, s, domain.SectionProjects,
		func(snap domain.Snapshot) ([]domain.Project, error) {
			if snap.FindProject(project.Slug) >= 0 {
				return nil, fmt.Errorf("project %q: %w", project.Slug, domain.ErrAlreadyExists)
			}
			return append([]domain.Project{project}, snap.Projects...), nil
		},
		s.gateway.SaveProjects,
	)
}

// UpdateProject merges patch into the project with the given slug.
func (s *ContentStore) UpdateProject(ctx context.Context, slug string, patch domain.ProjectPatch) error {
	if patch.Title != nil {
		title := s.cleanText(*patch.Title)
		if strings.TrimSpace(title) == "" {
			return fmt.Errorf("project title is required: %w", domain.ErrInvalidInput)
		}
		patch.Title = &title
	}
	if patch.Description != nil {
		desc := s.cleanText(*patch.Description)
		patch.Description = &desc
	}
	if patch.Slug != nil {
		next := domain.Slugify(*patch.Slug)
		if next == "" {
			return fmt.Errorf("project slug is required: %w", domain.ErrInvalidInput)
		}
		patch.Slug = &next
	}
	if patch.Photos != nil {
		patch.Photos = cleanPhotos(patch.Photos)
	}

	return mutate(ctx, s, domain.SectionProjects,
		func(snap domain.Snapshot) ([]domain.Project, error) {
			projects := snap.Projects
			idx := snap.FindProject(slug)
			if idx < 0 {
				s.log.Debug().Str("slug", slug).Msg("update for unknown project leaves list unchanged")
				return projects, nil
			}
			if patch.Slug != nil && *patch.Slug != slug && snap.FindProject(*patch.Slug) >= 0 {
				return nil, fmt.Errorf("project %q: %w", *patch.Slug, domain.ErrAlreadyExists)
			}
			projects[idx] = patch.Apply(projects[idx])
			return projects, nil
		},
		s.gateway.SaveProjects,
	)
}

// DeleteProject removes the first project with the given slug.
func (s *ContentStore) DeleteProject(ctx context.Context, slug string) error {
	return mutate(ctx, s, domain.SectionProjects,
		func(snap domain.Snapshot) ([]domain.Project, error) {
			idx := snap.FindProject(slug)
			if idx < 0 {
				return snap.Projects, nil
			}
			return append(snap.Projects[:idx:idx], snap.Projects[idx+1:]...), nil
		},
		s.gateway.SaveProjects,
	)
}

// SetTestimonials replaces the testimonials list.
func (s *ContentStore) SetTestimonials(ctx context.Context, testimonials []domain.Testimonial) error {
	cleaned, err := s.cleanTestimonials(testimonials)
	if err != nil {
		return err
	}

	return mutate(ctx, s, domain.SectionTestimonials,
		func(domain.Snapshot) ([]domain.Testimonial, error) {
			return cleaned, nil
		},
		s.gateway.SaveTestimonials,
	)
}

// AddTestimonial appends a testimonial.
func (s *ContentStore) AddTestimonial(ctx context.Context, testimonial domain.Testimonial) error {
	cleaned, err := s.cleanTestimonials([]domain.Testimonial{testimonial})
	if err != nil {
		return err
	}

	return mutate(ctx, s, domain.SectionTestimonials,
		func(snap domain.Snapshot) ([]domain.Testimonial, error) {
			return append(snap.Testimonials, cleaned[0]), nil
		},
		s.gateway.SaveTestimonials,
	)
}

// RemoveTestimonial removes the testimonial at index.
func (s *ContentStore) RemoveTestimonial(ctx context.Context, index int) error {
	return mutate(ctx, s, domain.SectionTestimonials,
		func(snap domain.Snapshot) ([]domain.Testimonial, error) {
			if index < 0 || index >= len(snap.Testimonials) {
				return nil, fmt.Errorf("testimonial %d: %w", index, domain.ErrNotFound)
			}
			return append(snap.Testimonials[:index:index], snap.Testimonials[index+1:]...), nil
		},
		s.gateway.SaveTestimonials,
	)
}

// SetAbout replaces the about section.
func (s *ContentStore) SetAbout(ctx context.Context, about domain.About) error {
	about = domain.About{
		Intro:      s.cleanText(about.Intro),
		Mission:    s.cleanText(about.Mission),
		Vision:     s.cleanText(about.Vision),
		Philosophy: s.cleanText(about.Philosophy),
	}

	return mutate(ctx, s, domain.SectionAbout,
		func(domain.Snapshot) (domain.About, error) {
			return about, nil
		},
		s.gateway.SaveAbout,
	)
}

// SetContact replaces the contact section. Phone and email are required.
func (s *ContentStore) SetContact(ctx context.Context, contact domain.Contact) error {
	contact.Phone = strings.TrimSpace(contact.Phone)
	contact.Email = strings.TrimSpace(contact.Email)
	if contact.Phone == "" || contact.Email == "" {
		return fmt.Errorf("contact phone and email are required: %w", domain.ErrInvalidInput)
	}
	contact.MapURLs = dedupeMapKeys(contact.MapURLs)

	return mutate(ctx, s, domain.SectionContact,
		func(domain.Snapshot) (domain.Contact, error) {
			return contact, nil
		},
		s.gateway.SaveContact,
	)
}

// SetMapURLs replaces the map locations, keeping the rest of the contact section.
func (s *ContentStore) SetMapURLs(ctx context.Context, locations []domain.MapLocation) error {
	locations = dedupeMapKeys(locations)
	return s.mutateMaps(ctx, func([]domain.MapLocation) ([]domain.MapLocation, error) {
		return locations, nil
	})
}

// AddMapLocation appends an empty map location for the editor to fill in.
func (s *ContentStore) AddMapLocation(ctx context.Context) error {
	return s.mutateMaps(ctx, func(current []domain.MapLocation) ([]domain.MapLocation, error) {
		return append(current, domain.MapLocation{}), nil
	})
}

// RemoveMapLocation removes the map location at index.
func (s *ContentStore) RemoveMapLocation(ctx context.Context, index int) error {
	return s.mutateMaps(ctx, func(current []domain.MapLocation) ([]domain.MapLocation, error) {
		if index < 0 || index >= len(current) {
			return nil, fmt.Errorf("map location %d: %w", index, domain.ErrNotFound)
		}
		return append(current[:index:index], current[index+1:]...), nil
	})
}

func (s *ContentStore) mutateMaps(
	ctx context.Context,
	next func([]domain.MapLocation) ([]domain.MapLocation, error),
) error {
	return mutate(ctx, s, domain.SectionContact,
		func(snap domain.Snapshot) (domain.Contact, error) {
			contact := snap.Contact
			locations, err := next(contact.MapURLs)
			if err != nil {
				return domain.Contact{}, err
			}
			if locations == nil {
				locations = []domain.MapLocation{}
			}
			contact.MapURLs = locations
			return contact, nil
		},
		s.gateway.SaveContact,
	)
}

// SyncStates reports the sync state of every section.
func (s *ContentStore) SyncStates() []domain.SectionStatus {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	out := make([]domain.SectionStatus, 0, len(domain.AllSections()))
	for _, section := range domain.AllSections() {
		st, ok := s.states[section]
		if !ok {
			st = domain.SectionStatus{Section: section, State: domain.SectionClean}
		}
		out = append(out, st)
	}
	return out
}

// SyncState reports the sync state of one section.
func (s *ContentStore) SyncState(section domain.Section) domain.SectionStatus {
	for _, st := range s.SyncStates() {
		if st.Section == section {
			return st
		}
	}
	return domain.SectionStatus{Section: section, State: domain.SectionClean}
}

// mutate runs one section mutation: compute the next value from the latest
// cache, send it to the server, then cache the server's answer. When the
// server write fails the policy decides between a local-only write and
// returning the error. At most one notification is sent.
func mutate[T any](
	ctx context.Context,
	s *ContentStore,
	section domain.Section,
	next func(domain.Snapshot) (T, error),
	save func(context.Context, T) (T, bool, error),
) error {
	s.mu.Lock()
	changed, err := mutateLocked(ctx, s, section, next, save)
	s.mu.Unlock()

	if changed {
		s.notifier.Notify()
	}
	return err
}

func mutateLocked[T any](
	ctx context.Context,
	s *ContentStore,
	section domain.Section,
	next func(domain.Snapshot) (T, error),
	save func(context.Context, T) (T, bool, error),
) (bool, error) {
	snap, _, healed := s.localLocked(ctx)

	value, err := next(snap.Clone())
	if err != nil {
		return healed, err
	}

	canonical, ok, saveErr := save(ctx, value)
	if saveErr == nil {
		if ok {
			value = canonical
		}
		if err := s.writeSection(ctx, section, value); err != nil {
			s.setState(section, domain.SectionError, err)
			return healed, fmt.Errorf("cache %s: %w", section, err)
		}
		s.setState(section, domain.SectionClean, nil)
		return true, nil
	}

	s.log.Debug().Err(saveErr).Str("section", section.String()).Msg("server write failed")

	if s.policy == domain.SyncPolicyStrict {
		s.setState(section, domain.SectionError, saveErr)
		return healed, fmt.Errorf("save %s: %w", section, saveErr)
	}

	if err := s.writeSection(ctx, section, value); err != nil {
		joined := errors.Join(saveErr, err)
		s.setState(section, domain.SectionError, joined)
		return healed, fmt.Errorf("save %s: %w", section, joined)
	}
	s.setState(section, domain.SectionPendingLocal, saveErr)
	return true, nil
}

// writeSection splices value into the freshest cached snapshot.
func (s *ContentStore) writeSection(ctx context.Context, section domain.Section, value any) error {
	raw, err := s.cache.ReadSnapshot(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	next, err := domain.ReplaceSection(raw, section, value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", section, err)
	}
	return s.writeRaw(ctx, next)
}

func (s *ContentStore) writeRaw(ctx context.Context, raw []byte) error {
	if err := s.cache.WriteSnapshot(ctx, raw); err != nil {
		metrics.CacheWritesTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.CacheWritesTotal.WithLabelValues("ok").Inc()
	s.digest, s.digested = sha256.Sum256(raw), true
	return nil
}

func (s *ContentStore) setState(section domain.Section, state domain.SectionState, cause error) {
	st := domain.SectionStatus{
		Section:   section,
		State:     state,
		UpdatedAt: s.now(),
	}
	if cause != nil {
		st.LastError = cause.Error()
	}

	s.stateMu.Lock()
	s.states[section] = st
	s.stateMu.Unlock()

	metrics.MutationsTotal.WithLabelValues(section.String(), state.String()).Inc()
}

func (s *ContentStore) markAll(state domain.SectionState) {
	now := s.now()
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	for _, section := range domain.AllSections() {
		s.states[section] = domain.SectionStatus{Section: section, State: state, UpdatedAt: now}
	}
}

// maxCleanPasses bounds how many layers of entity encoding cleanText peels.
const maxCleanPasses = 4

// cleanText strips markup from admin-entered free text. Entities are decoded
// before sanitizing and the pair repeats until the text is stable, so
// encoded tags cannot come back out as markup.
func (s *ContentStore) cleanText(v string) string {
	v = html.UnescapeString(v)
	for range maxCleanPasses {
		next := html.UnescapeString(s.strip.Sanitize(v))
		if next == v {
			break
		}
		v = next
	}
	return strings.TrimSpace(v)
}

func (s *ContentStore) cleanProject(p domain.Project) domain.Project {
	p.Title = s.cleanText(p.Title)
	p.Description = s.cleanText(p.Description)
	p.Slug = strings.TrimSpace(p.Slug)
	p.Photos = cleanPhotos(p.Photos)
	return p
}

func (s *ContentStore) cleanTestimonials(in []domain.Testimonial) ([]domain.Testimonial, error) {
	out := make([]domain.Testimonial, 0, len(in))
	for i, t := range in {
		t.Name = s.cleanText(t.Name)
		t.Text = s.cleanText(t.Text)
		if t.Name == "" || t.Text == "" {
			return nil, fmt.Errorf("testimonial %d: name and text are required: %w", i, domain.ErrInvalidInput)
		}
		if !domain.ValidRating(t.Rating) {
			return nil, fmt.Errorf("testimonial %d: rating %d: %w", i, t.Rating, domain.ErrInvalidRating)
		}
		out = append(out, t)
	}
	return out, nil
}

// cleanPhotos drops entries without a URL.
func cleanPhotos(in []domain.Photo) []domain.Photo {
	out := make([]domain.Photo, 0, len(in))
	for _, p := range in {
		p.URL = strings.TrimSpace(p.URL)
		if p.URL != "" {
			out = append(out, p)
		}
	}
	return out
}

// dedupeMapKeys suffixes repeated non-empty keys with -2, -3 and so on.
// Empty keys are left alone so new entries can be filled in later.
func dedupeMapKeys(in []domain.MapLocation) []domain.MapLocation {
	out := make([]domain.MapLocation, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, loc := range in {
		loc.Key = strings.TrimSpace(loc.Key)
		if loc.Key != "" {
			key := loc.Key
			for n := 2; seen[key]; n++ {
				key = loc.Key + "-" + strconv.Itoa(n)
			}
			loc.Key = key
			seen[key] = true
		}
		out = append(out, loc)
	}
	return out
}

func isJSONObject(raw []byte) bool {
	trimmed := strings.TrimSpace(string(raw))
	return strings.HasPrefix(trimmed, "{") && json.Valid(raw)
}
