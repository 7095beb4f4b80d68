package driving

import (
	"context"

	"github.com/shubhraaj/sitecms/internal/core/domain"
)

// ContentService mediates every read and write of site content.
//
// Reads never fail: when the content API or the local cache is
// unavailable they degrade to the best local data, then to defaults.
// Mutations report an error only when the change could not be applied
// anywhere, or when the strict sync policy is in force.
type ContentService interface {
	// Pull fetches the remote snapshot, caches it and returns it.
	// On failure the local snapshot is returned instead.
	Pull(ctx context.Context) domain.Snapshot

	// TryPull is Pull that also reports the remote or cache failure, if any.
	// The returned snapshot is usable either way.
	TryPull(ctx context.Context) (domain.Snapshot, error)

	// Snapshot returns the local snapshot, repairing the cache if its shape is stale.
	Snapshot(ctx context.Context) domain.Snapshot

	// AddProject inserts a project at the front of the list.
	AddProject(ctx context.Context, project domain.Project) error

	// UpdateProject merges patch into the project with the given slug.
	// An unknown slug leaves the local list unchanged.
	UpdateProject(ctx context.Context, slug string, patch domain.ProjectPatch) error

	// DeleteProject removes the project with the given slug.
	DeleteProject(ctx context.Context, slug string) error

	// SetTestimonials replaces the testimonials list.
	SetTestimonials(ctx context.Context, testimonials []domain.Testimonial) error

	// AddTestimonial appends a testimonial.
	AddTestimonial(ctx context.Context, testimonial domain.Testimonial) error

	// RemoveTestimonial removes the testimonial at index.
	RemoveTestimonial(ctx context.Context, index int) error

	// SetAbout replaces the about section.
	SetAbout(ctx context.Context, about domain.About) error

	// SetContact replaces the contact section.
	SetContact(ctx context.Context, contact domain.Contact) error

	// SetMapURLs replaces the contact map locations.
	SetMapURLs(ctx context.Context, locations []domain.MapLocation) error

	// AddMapLocation appends an empty map location.
	AddMapLocation(ctx context.Context) error

	// RemoveMapLocation removes the map location at index.
	RemoveMapLocation(ctx context.Context, index int) error

	// SyncStates reports the sync state of every section.
	SyncStates() []domain.SectionStatus

	// ImportSnapshot replaces the cache with a snapshot document without
	// contacting the server.
	ImportSnapshot(ctx context.Context, raw []byte) error

	// Reload re-reads the cache after an external change and reports
	// whether its contents differed from the last known state.
	Reload(ctx context.Context) (bool, error)

	// ClearCache drops the cached snapshot; the next read reseeds defaults.
	ClearCache(ctx context.Context) error

	// Subscribe registers a listener fired after every committed change.
	// The returned function unregisters it.
	Subscribe(listener func()) (unsubscribe func())
}
