// Package testimonials provides the client testimonial list view for the TUI.
package testimonials

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui/components/list"
	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui/messages"
	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui/styles"
	"github.com/shubhraaj/sitecms/internal/core/domain"
)

// ErrNoContentService is reported when an edit is attempted without a content service.
var ErrNoContentService = errors.New("content service not available")

// Editor is the part of driving.ContentService the view edits through.
type Editor interface {
	RemoveTestimonial(ctx context.Context, index int) error
}

// View lists testimonials.
type View struct {
	styles     *styles.Styles
	content    Editor
	list       *list.List
	names      []string
	confirming bool
}

// NewView creates a new testimonials view.
func NewView(s *styles.Styles, content Editor) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		content: content,
		list:    list.New(s, "Testimonials", "No testimonials yet. Add one with `sitecms testimonial add`."),
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetTestimonials replaces the displayed testimonials.
func (v *View) SetTestimonials(testimonials []domain.Testimonial) {
	items := make([]list.Item, len(testimonials))
	v.names = make([]string, len(testimonials))
	for i, t := range testimonials {
		items[i] = list.Item{
			Title:  styles.Stars(t.Rating) + "  " + t.Name,
			Detail: t.Text,
		}
		v.names[i] = t.Name
	}
	v.list.SetItems(items)
}

// Capturing reports whether the view is consuming all key presses.
func (v *View) Capturing() bool {
	return v.confirming
}

// Update handles messages for the testimonials view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	if v.confirming {
		v.confirming = false
		if keyMsg.String() != "y" {
			return v, nil
		}
		return v, v.remove(v.list.Selected())
	}

	switch keyMsg.String() {
	case "d", "delete":
		if !v.list.IsEmpty() {
			v.confirming = true
		}
		return v, nil
	}

	v.list, _ = v.list.Update(keyMsg)
	return v, nil
}

// remove returns a command that removes the testimonial at index.
func (v *View) remove(index int) tea.Cmd {
	return func() tea.Msg {
		if v.content == nil {
			return messages.ContentSaved{Section: domain.SectionTestimonials, Err: ErrNoContentService}
		}
		err := v.content.RemoveTestimonial(context.Background(), index)
		return messages.ContentSaved{
			Section: domain.SectionTestimonials,
			Action:  fmt.Sprintf("Removed testimonial %d", index+1),
			Err:     err,
		}
	}
}

// View renders the testimonials view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Testimonials"))
	b.WriteString("\n\n")
	b.WriteString(v.list.View())
	b.WriteString("\n\n")

	if v.confirming {
		name := v.names[v.list.Selected()]
		b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Remove testimonial from %s? [y] yes  [any key] no", name)))
	} else {
		b.WriteString(v.styles.Help.Render("[d] remove  [r] pull  [esc] back"))
	}
	return b.String()
}

// Selected returns the selected index.
func (v *View) Selected() int {
	return v.list.Selected()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.list.SetDimensions(width, max(height-6, 6))
}
