// Package contact shows the contact details and office map locations.
package contact

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
	AddMapLocation(ctx context.Context) error
	RemoveMapLocation(ctx context.Context, index int) error
}

// View shows contact details with an editable map location list.
type View struct {
	styles     *styles.Styles
	content    Editor
	contact    domain.Contact
	maps       *list.List
	confirming bool
}

// NewView creates a new contact view.
func NewView(s *styles.Styles, content Editor) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		content: content,
		maps:    list.New(s, "Map locations", "No map locations."),
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetContact replaces the displayed contact details.
func (v *View) SetContact(contact domain.Contact) {
	v.contact = contact
	items := make([]list.Item, len(contact.MapURLs))
	for i, loc := range contact.MapURLs {
		name := loc.Name
		if name == "" {
			name = "(unnamed)"
		}
		if loc.Key != "" {
			name += " [" + loc.Key + "]"
		}
		items[i] = list.Item{Title: name, Detail: loc.URL}
	}
	v.maps.SetItems(items)
}

// Capturing reports whether the view is consuming all key presses.
func (v *View) Capturing() bool {
	return v.confirming
}

// Update handles messages for the contact view.
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
		return v, v.remove(v.maps.Selected())
	}

	switch keyMsg.String() {
	case "a":
		return v, v.add()
	case "d", "delete":
		if !v.maps.IsEmpty() {
			v.confirming = true
		}
		return v, nil
	}

	v.maps, _ = v.maps.Update(keyMsg)
	return v, nil
}

func (v *View) add() tea.Cmd {
	return func() tea.Msg {
		if v.content == nil {
			return messages.ContentSaved{Section: domain.SectionContact, Err: ErrNoContentService}
		}
		err := v.content.AddMapLocation(context.Background())
		return messages.ContentSaved{Section: domain.SectionContact, Action: "Added map location", Err: err}
	}
}

func (v *View) remove(index int) tea.Cmd {
	return func() tea.Msg {
		if v.content == nil {
			return messages.ContentSaved{Section: domain.SectionContact, Err: ErrNoContentService}
		}
		err := v.content.RemoveMapLocation(context.Background(), index)
		return messages.ContentSaved{
			Section: domain.SectionContact,
			Action:  fmt.Sprintf("Removed map location %d", index+1),
			Err:     err,
		}
	}
}

// View renders the contact view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Contact"))
	b.WriteString("\n\n")

	field := func(label, value string) {
		if value == "" {
			value = v.styles.Muted.Render("(not set)")
		}
		fmt.Fprintf(&b, "  %-10s %s\n", label, value)
	}
	field("Phone", v.contact.Phone)
	field("Email", v.contact.Email)
	field("Instagram", v.contact.Socials.Instagram)
	field("Facebook", v.contact.Socials.Facebook)
	field("LinkedIn", v.contact.Socials.LinkedIn)

	b.WriteString("\n")
	b.WriteString(v.maps.View())
	b.WriteString("\n\n")

	if v.confirming {
		b.WriteString(v.styles.Warning.Render(
			fmt.Sprintf("Remove map location %d? [y] yes  [any key] no", v.maps.Selected()+1)))
	} else {
		b.WriteString(v.styles.Help.Render("[a] add location  [d] remove  [r] pull  [esc] back"))
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.maps.SetDimensions(width, max(height-12, 6))
}
