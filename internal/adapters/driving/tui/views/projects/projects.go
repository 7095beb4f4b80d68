// Package projects provides the portfolio project list view for the TUI.
package projects

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui/components/input"
	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui/components/list"
	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui/messages"
	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui/styles"
	"github.com/shubhraaj/sitecms/internal/core/domain"
)

// ErrNoContentService is reported when an edit is attempted without a content service.
var ErrNoContentService = errors.New("content service not available")

// Editor is the part of driving.ContentService the view edits through.
type Editor interface {
	AddProject(ctx context.Context, project domain.Project) error
	DeleteProject(ctx context.Context, slug string) error
}

// View lists projects and supports quick add and delete.
type View struct {
	styles  *styles.Styles
	content Editor

	projects []domain.Project
	list     *list.List
	title    *input.Field

	adding     bool
	confirming bool
	expanded   bool
}

// NewView creates a new projects view.
func NewView(s *styles.Styles, content Editor) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		content: content,
		list:    list.New(s, "Projects", "No projects yet. Press [a] to add one."),
		title:   input.NewField(s, "Title", "New project title..."),
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetProjects replaces the displayed projects.
func (v *View) SetProjects(projects []domain.Project) {
	v.projects = projects
	items := make([]list.Item, len(projects))
	for i, p := range projects {
		items[i] = list.Item{
			Title:  p.Title,
			Detail: fmt.Sprintf("/%s · %d photos", p.Slug, len(p.Photos)),
		}
	}
	v.list.SetItems(items)
}

// Capturing reports whether the view is consuming all key presses.
func (v *View) Capturing() bool {
	return v.adding || v.confirming
}

// Update handles messages for the projects view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case v.adding:
			return v.handleAddKey(msg)
		case v.confirming:
			return v.handleConfirmKey(msg)
		default:
			return v.handleKey(msg)
		}

	case messages.ContentSaved:
		if msg.Section == domain.SectionProjects && msg.Err == nil {
			v.adding = false
			v.title.Reset()
			v.title.Blur()
		}
		return v, nil
	}

	if v.adding {
		var cmd tea.Cmd
		v.title, cmd = v.title.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "a":
		v.adding = true
		v.expanded = false
		return v, v.title.Focus()
	case "d", "delete":
		if !v.list.IsEmpty() {
			v.confirming = true
		}
		return v, nil
	case "enter":
		v.expanded = !v.expanded
		return v, nil
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

func (v *View) handleAddKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type { //nolint:exhaustive // only submit and cancel are special
	case tea.KeyEsc:
		v.adding = false
		v.title.Reset()
		v.title.Blur()
		return v, nil
	case tea.KeyEnter:
		title := strings.TrimSpace(v.title.Value())
		if title == "" {
			return v, nil
		}
		return v, v.addProject(title)
	}

	var cmd tea.Cmd
	v.title, cmd = v.title.Update(msg)
	return v, cmd
}

func (v *View) handleConfirmKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	v.confirming = false
	if msg.String() != "y" {
		return v, nil
	}
	p := v.Selected()
	if p == nil {
		return v, nil
	}
	return v, v.deleteProject(p.Slug)
}

// addProject returns a command that adds a project with a derived slug.
func (v *View) addProject(title string) tea.Cmd {
	return func() tea.Msg {
		if v.content == nil {
			return messages.ContentSaved{Section: domain.SectionProjects, Err: ErrNoContentService}
		}
		slug := domain.Slugify(title)
		err := v.content.AddProject(context.Background(), domain.Project{
			Slug:   slug,
			Title:  title,
			Photos: []domain.Photo{},
		})
		return messages.ContentSaved{
			Section: domain.SectionProjects,
			Action:  fmt.Sprintf("Added %q", slug),
			Err:     err,
		}
	}
}

// deleteProject returns a command that deletes a project.
func (v *View) deleteProject(slug string) tea.Cmd {
	return func() tea.Msg {
		if v.content == nil {
			return messages.ContentSaved{Section: domain.SectionProjects, Err: ErrNoContentService}
		}
		err := v.content.DeleteProject(context.Background(), slug)
		return messages.ContentSaved{
			Section: domain.SectionProjects,
			Action:  fmt.Sprintf("Deleted %q", slug),
			Err:     err,
		}
	}
}

// View renders the projects view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Projects"))
	b.WriteString("\n\n")
	b.WriteString(v.list.View())
	b.WriteString("\n\n")

	if p := v.Selected(); v.expanded && p != nil {
		b.WriteString(v.renderDetail(p))
		b.WriteString("\n")
	}

	switch {
	case v.adding:
		b.WriteString(v.title.View())
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[enter] save  [esc] cancel"))
	case v.confirming:
		b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Delete %q? [y] yes  [any key] no", v.Selected().Title)))
	default:
		b.WriteString(v.styles.Help.Render("[a] add  [enter] details  [d] delete  [r] pull  [esc] back"))
	}

	return b.String()
}

func (v *View) renderDetail(p *domain.Project) string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render(p.Title))
	b.WriteString("\n")
	if p.Description != "" {
		b.WriteString(v.styles.Normal.Render(p.Description))
		b.WriteString("\n")
	}
	for _, photo := range p.Photos {
		b.WriteString(v.styles.Muted.Render("  " + photo.URL))
		b.WriteString("\n")
	}
	return b.String()
}

// Selected returns the selected project, or nil if the list is empty.
func (v *View) Selected() *domain.Project {
	i := v.list.Selected()
	if i < 0 || i >= len(v.projects) {
		return nil
	}
	return &v.projects[i]
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.list.SetDimensions(width, max(height-8, 6))
	v.title.SetWidth(width)
}
