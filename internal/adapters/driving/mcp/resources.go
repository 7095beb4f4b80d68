package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/shubhraaj/sitecms/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for sitecms resources.
	uriScheme = "sitecms://"

	mimeJSON = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "snapshot",
		Name:        "snapshot",
		Description: "The full site content from the local cache",
		MIMEType:    mimeJSON,
	}, s.handleSnapshotResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "status",
		Name:        "status",
		Description: "Sync state of every section and whether an admin session is stored",
		MIMEType:    mimeJSON,
	}, s.handleStatusResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sections/{section}",
		Name:        "section",
		Description: "One section of the site content: about, projects, testimonials or contact",
		MIMEType:    mimeJSON,
	}, s.handleSectionResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "projects/{slug}",
		Name:        "project",
		Description: "A single portfolio project by slug",
		MIMEType:    mimeJSON,
	}, s.handleProjectResource)
}

// handleSnapshotResource returns the whole snapshot.
func (s *Server) handleSnapshotResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Content.Snapshot(ctx))
}

// statusInfo is the payload of the status resource.
type statusInfo struct {
	Authenticated bool          `json:"authenticated"`
	Subject       string        `json:"subject,omitempty"`
	ExpiresAt     *time.Time    `json:"expires_at,omitempty"`
	Sections      []sectionInfo `json:"sections"`
}

type sectionInfo struct {
	Section   string     `json:"section"`
	State     string     `json:"state"`
	LastError string     `json:"last_error,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// handleStatusResource returns sync and session state.
func (s *Server) handleStatusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	var info statusInfo
	if s.ports.Session != nil {
		session := s.ports.Session.Info(ctx)
		info.Authenticated = session.Authenticated
		info.Subject = session.Subject
		if !session.ExpiresAt.IsZero() {
			info.ExpiresAt = &session.ExpiresAt
		}
	}

	states := s.ports.Content.SyncStates()
	info.Sections = make([]sectionInfo, len(states))
	for i, st := range states {
		info.Sections[i] = sectionInfo{
			Section:   st.Section.String(),
			State:     st.State.String(),
			LastError: st.LastError,
		}
		if !st.UpdatedAt.IsZero() {
			updated := st.UpdatedAt
			info.Sections[i].UpdatedAt = &updated
		}
	}

	return jsonResource(req.Params.URI, info)
}

// handleSectionResource returns one section of the snapshot.
func (s *Server) handleSectionResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	section := extractSection(req.Params.URI)
	if !section.IsValid() {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	snap := s.ports.Content.Snapshot(ctx)
	var value any
	switch section {
	case domain.SectionAbout:
		value = snap.About
	case domain.SectionProjects:
		value = snap.Projects
	case domain.SectionTestimonials:
		value = snap.Testimonials
	case domain.SectionContact:
		value = snap.Contact
	}
	return jsonResource(req.Params.URI, value)
}

// handleProjectResource returns the project with the slug in the URI.
func (s *Server) handleProjectResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	slug := extractSlug(req.Params.URI)
	if slug == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	snap := s.ports.Content.Snapshot(ctx)
	idx := snap.FindProject(slug)
	if idx < 0 {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, snap.Projects[idx])
}

func jsonResource(uri string, value any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

// extractSection extracts the section from a URI like sitecms://sections/{section}.
func extractSection(uri string) domain.Section {
	const prefix = uriScheme + "sections/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	return domain.Section(strings.TrimPrefix(uri, prefix))
}

// extractSlug extracts the slug from a URI like sitecms://projects/{slug}.
func extractSlug(uri string) string {
	const prefix = uriScheme + "projects/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	slug := strings.TrimPrefix(uri, prefix)
	if strings.Contains(slug, "/") {
		return ""
	}
	return slug
}
