package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/shubhraaj/sitecms/internal/core/domain"
)

// SaveOutput reports where an edit landed.
type SaveOutput struct {
	Message   string `json:"message"`
	Section   string `json:"section"`
	State     string `json:"state"`
	LastError string `json:"last_error,omitempty"`
}

// PullInput is the input schema for the pull tool.
type PullInput struct{}

// PullOutput is the output schema for the pull tool.
type PullOutput struct {
	Refreshed    bool   `json:"refreshed"`
	Error        string `json:"error,omitempty"`
	Projects     int    `json:"projects"`
	Testimonials int    `json:"testimonials"`
	Locations    int    `json:"map_locations"`
}

// AddProjectInput is the input schema for the add_project tool.
type AddProjectInput struct {
	Title       string   `json:"title" jsonschema:"project title"`
	Slug        string   `json:"slug,omitempty" jsonschema:"URL slug; derived from the title when empty"`
	Description string   `json:"description,omitempty" jsonschema:"project description"`
	PhotoURLs   []string `json:"photo_urls,omitempty" jsonschema:"URLs of already hosted gallery images"`
}

// UpdateProjectInput is the input schema for the update_project tool.
// Omitted fields are left unchanged.
type UpdateProjectInput struct {
	Slug        string   `json:"slug" jsonschema:"slug of the project to update"`
	NewSlug     *string  `json:"new_slug,omitempty" jsonschema:"replacement slug"`
	Title       *string  `json:"title,omitempty" jsonschema:"replacement title"`
	Description *string  `json:"description,omitempty" jsonschema:"replacement description"`
	PhotoURLs   []string `json:"photo_urls,omitempty" jsonschema:"replacement gallery image URLs"`
}

// SlugInput identifies a project.
type SlugInput struct {
	Slug string `json:"slug" jsonschema:"project slug"`
}

// AddTestimonialInput is the input schema for the add_testimonial tool.
type AddTestimonialInput struct {
	Name   string `json:"name" jsonschema:"client name"`
	Text   string `json:"text" jsonschema:"quote text"`
	Rating int    `json:"rating,omitempty" jsonschema:"star rating from 1 to 5 (default 5)"`
}

// IndexInput identifies a list entry by its zero-based position.
type IndexInput struct {
	Index int `json:"index" jsonschema:"zero-based position in the list"`
}

// SetAboutInput is the input schema for the set_about tool.
type SetAboutInput struct {
	Intro      string `json:"intro" jsonschema:"introduction paragraph"`
	Mission    string `json:"mission" jsonschema:"mission statement"`
	Vision     string `json:"vision" jsonschema:"vision statement"`
	Philosophy string `json:"philosophy" jsonschema:"design philosophy"`
}

// SetContactInput is the input schema for the set_contact tool.
// Map locations are kept from the current contact section.
type SetContactInput struct {
	Phone     string `json:"phone" jsonschema:"contact phone number"`
	Email     string `json:"email" jsonschema:"contact email address"`
	Instagram string `json:"instagram,omitempty" jsonschema:"Instagram profile URL"`
	Facebook  string `json:"facebook,omitempty" jsonschema:"Facebook page URL"`
	LinkedIn  string `json:"linkedin,omitempty" jsonschema:"LinkedIn page URL"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "pull",
		Description: "Refresh the local cache from the content API",
	}, s.handlePull)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_project",
		Description: "Add a portfolio project at the top of the gallery",
	}, s.handleAddProject)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_project",
		Description: "Update fields of an existing portfolio project",
	}, s.handleUpdateProject)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_project",
		Description: "Delete a portfolio project",
	}, s.handleDeleteProject)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_testimonial",
		Description: "Append a client testimonial",
	}, s.handleAddTestimonial)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_testimonial",
		Description: "Remove a testimonial by position",
	}, s.handleRemoveTestimonial)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_about",
		Description: "Replace the about page copy",
	}, s.handleSetAbout)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_contact",
		Description: "Replace the contact details, keeping map locations",
	}, s.handleSetContact)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_map_location",
		Description: "Remove an office map location by position",
	}, s.handleRemoveMapLocation)
}

// handlePull handles the pull tool invocation.
func (s *Server) handlePull(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ PullInput,
) (*mcp.CallToolResult, PullOutput, error) {
	snap, err := s.ports.Content.TryPull(ctx)

	output := PullOutput{
		Refreshed:    err == nil,
		Projects:     len(snap.Projects),
		Testimonials: len(snap.Testimonials),
		Locations:    len(snap.Contact.MapURLs),
	}
	if err != nil {
		output.Error = err.Error()
	}
	return nil, output, nil
}

// handleAddProject handles the add_project tool invocation.
func (s *Server) handleAddProject(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddProjectInput,
) (*mcp.CallToolResult, SaveOutput, error) {
	slug := input.Slug
	if slug == "" {
		slug = domain.Slugify(input.Title)
	}

	project := domain.Project{
		Slug:        slug,
		Title:       input.Title,
		Description: input.Description,
		Photos:      photosFromURLs(input.PhotoURLs),
	}
	if project.Photos == nil {
		project.Photos = []domain.Photo{}
	}

	if err := s.ports.Content.AddProject(ctx, project); err != nil {
		return nil, SaveOutput{}, err
	}
	return nil, s.saved(domain.SectionProjects, fmt.Sprintf("Added project %q.", slug)), nil
}

// handleUpdateProject handles the update_project tool invocation.
func (s *Server) handleUpdateProject(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateProjectInput,
) (*mcp.CallToolResult, SaveOutput, error) {
	snap := s.ports.Content.Snapshot(ctx)
	if snap.FindProject(input.Slug) < 0 {
		return nil, SaveOutput{}, fmt.Errorf("project %q: %w", input.Slug, domain.ErrNotFound)
	}

	patch := domain.ProjectPatch{
		Slug:        input.NewSlug,
		Title:       input.Title,
		Description: input.Description,
		Photos:      photosFromURLs(input.PhotoURLs),
	}
	if patch.IsEmpty() {
		return nil, SaveOutput{}, fmt.Errorf("nothing to update: %w", domain.ErrInvalidInput)
	}

	if err := s.ports.Content.UpdateProject(ctx, input.Slug, patch); err != nil {
		return nil, SaveOutput{}, err
	}
	return nil, s.saved(domain.SectionProjects, fmt.Sprintf("Updated project %q.", input.Slug)), nil
}

// handleDeleteProject handles the delete_project tool invocation.
func (s *Server) handleDeleteProject(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SlugInput,
) (*mcp.CallToolResult, SaveOutput, error) {
	if err := s.ports.Content.DeleteProject(ctx, input.Slug); err != nil {
		return nil, SaveOutput{}, err
	}
	return nil, s.saved(domain.SectionProjects, fmt.Sprintf("Deleted project %q.", input.Slug)), nil
}

// handleAddTestimonial handles the add_testimonial tool invocation.
func (s *Server) handleAddTestimonial(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddTestimonialInput,
) (*mcp.CallToolResult, SaveOutput, error) {
	rating := input.Rating
	if rating == 0 {
		rating = domain.DefaultRating
	}

	testimonial := domain.Testimonial{Name: input.Name, Rating: rating, Text: input.Text}
	if err := s.ports.Content.AddTestimonial(ctx, testimonial); err != nil {
		return nil, SaveOutput{}, err
	}
	return nil, s.saved(domain.SectionTestimonials, "Added testimonial from "+input.Name+"."), nil
}

// handleRemoveTestimonial handles the remove_testimonial tool invocation.
func (s *Server) handleRemoveTestimonial(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IndexInput,
) (*mcp.CallToolResult, SaveOutput, error) {
	if err := s.ports.Content.RemoveTestimonial(ctx, input.Index); err != nil {
		return nil, SaveOutput{}, err
	}
	return nil, s.saved(domain.SectionTestimonials, fmt.Sprintf("Removed testimonial %d.", input.Index)), nil
}

// handleSetAbout handles the set_about tool invocation.
func (s *Server) handleSetAbout(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SetAboutInput,
) (*mcp.CallToolResult, SaveOutput, error) {
	about := domain.About{
		Intro:      input.Intro,
		Mission:    input.Mission,
		Vision:     input.Vision,
		Philosophy: input.Philosophy,
	}
	if err := s.ports.Content.SetAbout(ctx, about); err != nil {
		return nil, SaveOutput{}, err
	}
	return nil, s.saved(domain.SectionAbout, "Updated about page."), nil
}

// handleSetContact handles the set_contact tool invocation.
func (s *Server) handleSetContact(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SetContactInput,
) (*mcp.CallToolResult, SaveOutput, error) {
	current := s.ports.Content.Snapshot(ctx).Contact

	contact := domain.Contact{
		Phone: input.Phone,
		Email: input.Email,
		Socials: domain.Socials{
			Instagram: input.Instagram,
			Facebook:  input.Facebook,
			LinkedIn:  input.LinkedIn,
		},
		MapURLs: current.MapURLs,
	}
	if err := s.ports.Content.SetContact(ctx, contact); err != nil {
		return nil, SaveOutput{}, err
	}
	return nil, s.saved(domain.SectionContact, "Updated contact details."), nil
}

// handleRemoveMapLocation handles the remove_map_location tool invocation.
func (s *Server) handleRemoveMapLocation(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IndexInput,
) (*mcp.CallToolResult, SaveOutput, error) {
	if err := s.ports.Content.RemoveMapLocation(ctx, input.Index); err != nil {
		return nil, SaveOutput{}, err
	}
	return nil, s.saved(domain.SectionContact, fmt.Sprintf("Removed map location %d.", input.Index)), nil
}

// saved builds the tool output for an edit to section.
func (s *Server) saved(section domain.Section, message string) SaveOutput {
	out := SaveOutput{
		Message: message,
		Section: section.String(),
		State:   domain.SectionClean.String(),
	}
	for _, st := range s.ports.Content.SyncStates() {
		if st.Section == section {
			out.State = st.State.String()
			out.LastError = st.LastError
			break
		}
	}
	return out
}

func photosFromURLs(urls []string) []domain.Photo {
	if urls == nil {
		return nil
	}
	photos := make([]domain.Photo, 0, len(urls))
	for _, u := range urls {
		photos = append(photos, domain.Photo{URL: u})
	}
	return photos
}
