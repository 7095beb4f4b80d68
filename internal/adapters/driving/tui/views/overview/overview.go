// Package overview shows the sync state of every section and the admin
// session.
package overview

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui/styles"
	"github.com/shubhraaj/sitecms/internal/core/domain"
)

// View is the overview screen.
type View struct {
	styles  *styles.Styles
	snap    domain.Snapshot
	states  []domain.SectionStatus
	session domain.SessionInfo
	pull    *domain.PullRun
	now     func() time.Time
	width   int
	height  int
}

// NewView creates a new overview view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s, now: time.Now, width: 80, height: 24}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the view. The overview is read-only.
func (v *View) Update(_ tea.Msg) (*View, tea.Cmd) {
	return v, nil
}

// SetData replaces the displayed content.
func (v *View) SetData(snap domain.Snapshot, states []domain.SectionStatus, session domain.SessionInfo) {
	v.snap = snap
	v.states = states
	v.session = session
}

// SetLastPull sets the latest background pull; nil hides the line.
func (v *View) SetLastPull(run *domain.PullRun) {
	v.pull = run
}

// View renders the overview.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Overview"))
	b.WriteString("\n\n")

	b.WriteString(v.styles.Subtitle.Render("Sections"))
	b.WriteString("\n")
	for _, st := range v.states {
		fmt.Fprintf(&b, "  %-14s %-10s %s\n",
			st.Section.String(),
			v.count(st.Section),
			v.styles.State(st.State))
		if st.LastError != "" {
			b.WriteString(v.styles.Muted.Render("    " + st.LastError))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render("Session"))
	b.WriteString("\n  ")
	b.WriteString(v.renderSession())
	b.WriteString("\n")

	if v.pull != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("Background pull"))
		b.WriteString("\n  ")
		b.WriteString(v.renderPull())
		b.WriteString("\n")
	}

	if intro := strings.TrimSpace(v.snap.About.Intro); intro != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("About"))
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Width(max(v.width-4, 20)).Render("  " + intro))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[r] pull  [esc] back  [q] quit"))
	return b.String()
}

func (v *View) count(section domain.Section) string {
	switch section {
	case domain.SectionProjects:
		return fmt.Sprintf("%d items", len(v.snap.Projects))
	case domain.SectionTestimonials:
		return fmt.Sprintf("%d items", len(v.snap.Testimonials))
	case domain.SectionContact:
		return fmt.Sprintf("%d maps", len(v.snap.Contact.MapURLs))
	default:
		return ""
	}
}

func (v *View) renderSession() string {
	if !v.session.Authenticated {
		return v.styles.Warning.Render("Not logged in; edits are saved locally only")
	}

	line := "Logged in"
	if v.session.Subject != "" {
		line += " as " + v.session.Subject
	}
	if v.session.Expired(v.now()) {
		return v.styles.Error.Render(line + " (token expired)")
	}
	if !v.session.ExpiresAt.IsZero() {
		line += ", expires " + v.session.ExpiresAt.Local().Format("2 Jan 2006 15:04")
	}
	return v.styles.Success.Render(line)
}

func (v *View) renderPull() string {
	when := v.pull.Finished.Local().Format("2 Jan 15:04")
	if !v.pull.OK() {
		return v.styles.Warning.Render("Failed at " + when + ": " + v.pull.Err)
	}
	return v.styles.Success.Render(fmt.Sprintf("Pulled at %s: %d projects, %d testimonials",
		when, v.pull.Projects, v.pull.Testimonials))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
