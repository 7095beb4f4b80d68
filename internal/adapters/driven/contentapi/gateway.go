package contentapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shubhraaj/sitecms/internal/core/domain"
)

// API paths.
const (
	PathData         = "/api/data"
	PathLogin        = "/api/admin/login"
	PathProjects     = "/api/projects"
	PathTestimonials = "/api/testimonials"
	PathAbout        = "/api/about"
	PathContact      = "/api/contact"
)

// FetchSnapshot retrieves the whole content snapshot.
// The envelope's data member is returned when present, else the whole body.
func (c *Client) FetchSnapshot(ctx context.Context) ([]byte, error) {
	body, err := c.do(ctx, "fetch", http.MethodGet, PathData, nil, false)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && hasData(env.Data) {
		return env.Data, nil
	}
	return body, nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges admin credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body, err := c.do(ctx, "login", http.MethodPost, PathLogin, loginRequest{
		Username: username,
		Password: password,
	}, false)
	if err != nil {
		return "", err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil || !hasData(env.Data) {
		return "", nil
	}
	var resp loginResponse
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		return "", nil
	}
	return resp.Token, nil
}

// SaveProjects replaces the projects section.
func (c *Client) SaveProjects(ctx context.Context, projects []domain.Project) ([]domain.Project, bool, error) {
	return saveSection(ctx, c, "projects", PathProjects, projects)
}

// SaveTestimonials replaces the testimonials section.
func (c *Client) SaveTestimonials(
	ctx context.Context,
	testimonials []domain.Testimonial,
) ([]domain.Testimonial, bool, error) {
	return saveSection(ctx, c, "testimonials", PathTestimonials, testimonials)
}

// SaveAbout replaces the about section.
func (c *Client) SaveAbout(ctx context.Context, about domain.About) (domain.About, bool, error) {
	return saveSection(ctx, c, "about", PathAbout, about)
}

// SaveContact replaces the contact section.
func (c *Client) SaveContact(ctx context.Context, contact domain.Contact) (domain.Contact, bool, error) {
	return saveSection(ctx, c, "contact", PathContact, contact)
}

// saveSection PATCHes value and decodes the canonical value from the reply.
// ok is false when the reply carried no usable data.
func saveSection[T any](ctx context.Context, c *Client, op, path string, value T) (T, bool, error) {
	var zero T

	body, err := c.do(ctx, op, http.MethodPatch, path, value, true)
	if err != nil {
		return zero, false, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil || !hasData(env.Data) {
		return zero, false, nil
	}

	var canonical T
	if err := json.Unmarshal(env.Data, &canonical); err != nil {
		c.log.Debug().Err(err).Str("op", op).Msg("ignoring undecodable response data")
		return zero, false, nil
	}
	return canonical, true, nil
}
