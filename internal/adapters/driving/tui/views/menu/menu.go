// Package menu is the TUI start screen. It lists the site sections and flags
// the ones whose local copy has not reached the server.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui/messages"
	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui/styles"
	"github.com/shubhraaj/sitecms/internal/core/domain"
)

type entry struct {
	label   string
	hint    string
	target  messages.ViewType
	section domain.Section // empty when the entry edits no section
	quit    bool
}

var entries = []entry{
	{label: "Overview", hint: "sync state and session", target: messages.ViewOverview, section: domain.SectionAbout},
	{label: "Projects", hint: "portfolio gallery", target: messages.ViewProjects, section: domain.SectionProjects},
	{label: "Testimonials", hint: "client quotes", target: messages.ViewTestimonials, section: domain.SectionTestimonials},
	{label: "Contact", hint: "details and office maps", target: messages.ViewContact, section: domain.SectionContact},
	{label: "Settings", hint: "sync policy and cache", target: messages.ViewSettings},
	{label: "Help", target: messages.ViewHelp},
	{label: "Quit", quit: true},
}

// View is the section menu.
type View struct {
	styles *styles.Styles
	cursor int
	states map[domain.Section]domain.SectionState
	width  int
	height int
	ready  bool
}

// NewView returns a menu with the cursor on the first entry.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s, width: 80, height: 24}
}

// Init implements the view contract; the menu has nothing to load.
func (v *View) Init() tea.Cmd { return nil }

// SetStates records per-section sync state for the badges.
func (v *View) SetStates(states []domain.SectionStatus) {
	v.states = make(map[domain.Section]domain.SectionState, len(states))
	for _, st := range states {
		v.states[st.Section] = st.State
	}
}

// Update moves the cursor and opens entries. Digits 1-7 open an entry directly.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "up", "k":
			v.cursor = max(v.cursor-1, 0)
		case "down", "j":
			v.cursor = min(v.cursor+1, len(entries)-1)
		case "home", "g":
			v.cursor = 0
		case "end", "G":
			v.cursor = len(entries) - 1
		case "enter":
			return v, v.open(v.cursor)
		default:
			if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < len(entries) {
				v.cursor = int(key[0] - '1')
				return v, v.open(v.cursor)
			}
		}
	}
	return v, nil
}

func (v *View) open(i int) tea.Cmd {
	e := entries[i]
	if e.quit {
		return tea.Quit
	}
	return func() tea.Msg { return messages.ViewChanged{View: e.target} }
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("ShubhRaaj Interiors"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Site content"))
	b.WriteString("\n\n")

	for i, e := range entries {
		line := fmt.Sprintf("%d %s", i+1, e.label)
		if i == v.cursor {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString(v.badge(e.section))
		if e.hint != "" {
			b.WriteString(v.styles.Muted.Render("  " + e.hint))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] move  [1-7/enter] open  [r] pull  [q] quit"))
	return b.String()
}

func (v *View) badge(section domain.Section) string {
	if section == "" {
		return ""
	}
	switch v.states[section] {
	case domain.SectionPendingLocal:
		return v.styles.Warning.Render(" (local)")
	case domain.SectionError:
		return v.styles.Error.Render(" (error)")
	default:
		return ""
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width, v.height = width, height
	v.ready = true
}

// Selected returns the cursor position.
func (v *View) Selected() int { return v.cursor }
