package domain

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Section names a top-level part of the content snapshot.
type Section string

// Snapshot sections.
const (
	SectionAbout        Section = "about"
	SectionProjects     Section = "projects"
	SectionTestimonials Section = "testimonials"
	SectionContact      Section = "contact"
)

// AllSections returns the sections in canonical order.
func AllSections() []Section {
	return []Section{SectionAbout, SectionProjects, SectionTestimonials, SectionContact}
}

// IsValid returns true if the section is recognised.
func (s Section) IsValid() bool {
	switch s {
	case SectionAbout, SectionProjects, SectionTestimonials, SectionContact:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s Section) String() string {
	return string(s)
}

// Snapshot is the full site content as stored in the local cache and
// served by the content API.
type Snapshot struct {
	About        About         `json:"about" yaml:"about"`
	Projects     []Project     `json:"projects" yaml:"projects"`
	Testimonials []Testimonial `json:"testimonials" yaml:"testimonials"`
	Contact      Contact       `json:"contact" yaml:"contact"`
}

// About holds the free-text about-page copy.
type About struct {
	Intro      string `json:"intro" yaml:"intro"`
	Mission    string `json:"mission" yaml:"mission"`
	Vision     string `json:"vision" yaml:"vision"`
	Philosophy string `json:"philosophy" yaml:"philosophy"`
}

// Project is a portfolio entry shown in the project gallery.
type Project struct {
	Slug        string  `json:"slug" yaml:"slug"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description" yaml:"description"`
	Photos      []Photo `json:"photos" yaml:"photos"`
}

// Photo references a hosted image.
// ExternalID is the image host's identifier and is optional.
type Photo struct {
	URL        string `json:"url" yaml:"url"`
	ExternalID string `json:"publicId,omitempty" yaml:"publicId,omitempty"`
}

// UnmarshalJSON accepts both the object form and the legacy bare URL string.
func (p *Photo) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var url string
		if err := json.Unmarshal(trimmed, &url); err != nil {
			return err
		}
		*p = Photo{URL: url}
		return nil
	}

	type plain Photo
	var decoded plain
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return err
	}
	*p = Photo(decoded)
	return nil
}

// Testimonial is a client quote with a star rating.
type Testimonial struct {
	Name   string `json:"name" yaml:"name"`
	Rating int    `json:"rating" yaml:"rating"`
	Text   string `json:"text" yaml:"text"`
}

// Rating bounds.
const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
)

// ValidRating returns true if r is within [MinRating, MaxRating].
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// Contact holds the business contact details.
type Contact struct {
	Phone   string        `json:"phone" yaml:"phone"`
	Email   string        `json:"email" yaml:"email"`
	Socials Socials       `json:"socials" yaml:"socials"`
	MapURLs []MapLocation `json:"mapUrls" yaml:"mapUrls"`
}

// Socials holds social profile links.
type Socials struct {
	Instagram string `json:"instagram" yaml:"instagram"`
	Facebook  string `json:"facebook" yaml:"facebook"`
	LinkedIn  string `json:"linkedin" yaml:"linkedin"`
}

// MapLocation is an embeddable map for one office.
type MapLocation struct {
	Key  string `json:"key" yaml:"key"`
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// ProjectPatch carries a partial project update.
// Nil fields are left unchanged.
type ProjectPatch struct {
	Slug        *string
	Title       *string
	Description *string
	Photos      []Photo
}

// IsEmpty returns true if the patch changes nothing.
func (p ProjectPatch) IsEmpty() bool {
	return p.Slug == nil && p.Title == nil && p.Description == nil && p.Photos == nil
}

// Apply returns a copy of project with the patch merged in.
func (p ProjectPatch) Apply(project Project) Project {
	out := project.Clone()
	if p.Slug != nil {
		out.Slug = *p.Slug
	}
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Photos != nil {
		out.Photos = slices.Clone(p.Photos)
	}
	return out
}

// Clone returns a deep copy of the project. An empty photo list stays
// empty rather than becoming nil, so it encodes as [].
func (p Project) Clone() Project {
	out := p
	out.Photos = slices.Clone(p.Photos)
	return out
}

// CloneProjects returns a deep copy of projects.
func CloneProjects(projects []Project) []Project {
	if projects == nil {
		return nil
	}
	out := make([]Project, len(projects))
	for i := range projects {
		out[i] = projects[i].Clone()
	}
	return out
}

// Clone returns a deep copy of the contact details.
func (c Contact) Clone() Contact {
	out := c
	out.MapURLs = slices.Clone(c.MapURLs)
	return out
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Projects = CloneProjects(s.Projects)
	out.Testimonials = slices.Clone(s.Testimonials)
	out.Contact = s.Contact.Clone()
	return out
}

// FindProject returns the index of the first project with slug, or -1.
func (s Snapshot) FindProject(slug string) int {
	for i := range s.Projects {
		if s.Projects[i].Slug == slug {
			return i
		}
	}
	return -1
}
