package driven

import (
	"context"

	"github.com/shubhraaj/sitecms/internal/core/domain"
)

// ContentGateway is the request layer over the remote content API.
//
// Errors are *domain.NetworkError for transport failures and
// *domain.HTTPError for non-success responses.
//
// Section saves return the server's canonical value and ok=true, or
// ok=false when the response carried no data and the caller should keep
// the value it sent.
type ContentGateway interface {
	// FetchSnapshot retrieves the whole content snapshot as raw JSON.
	FetchSnapshot(ctx context.Context) ([]byte, error)

	// Login exchanges admin credentials for a bearer token.
	// Returns an empty token if the response carried none.
	Login(ctx context.Context, username, password string) (string, error)

	// SaveProjects replaces the projects section.
	SaveProjects(ctx context.Context, projects []domain.Project) ([]domain.Project, bool, error)

	// SaveTestimonials replaces the testimonials section.
	SaveTestimonials(ctx context.Context, testimonials []domain.Testimonial) ([]domain.Testimonial, bool, error)

	// SaveAbout replaces the about section.
	SaveAbout(ctx context.Context, about domain.About) (domain.About, bool, error)

	// SaveContact replaces the contact section.
	SaveContact(ctx context.Context, contact domain.Contact) (domain.Contact, bool, error)
}
