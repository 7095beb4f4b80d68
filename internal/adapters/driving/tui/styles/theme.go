// Package styles holds the TUI colours and lipgloss styles.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shubhraaj/sitecms/internal/core/domain"
)

// Palette is the studio colour scheme. Each colour adapts to light and dark
// terminals.
type Palette struct {
	Accent  lipgloss.AdaptiveColor // walnut
	Calm    lipgloss.AdaptiveColor // sage
	Text    lipgloss.AdaptiveColor
	Faint   lipgloss.AdaptiveColor
	Synced  lipgloss.AdaptiveColor
	Local   lipgloss.AdaptiveColor
	Failed  lipgloss.AdaptiveColor
	Frame   lipgloss.AdaptiveColor
	BarFill lipgloss.AdaptiveColor
}

// Studio is the default palette.
var Studio = Palette{
	Accent:  lipgloss.AdaptiveColor{Light: "#8C5A2E", Dark: "#C08552"},
	Calm:    lipgloss.AdaptiveColor{Light: "#4F6F63", Dark: "#8AA399"},
	Text:    lipgloss.AdaptiveColor{Light: "#2B251F", Dark: "#EDE6DB"},
	Faint:   lipgloss.AdaptiveColor{Light: "#8F8578", Dark: "#7D7468"},
	Synced:  lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#A6E3A1"},
	Local:   lipgloss.AdaptiveColor{Light: "#A06A00", Dark: "#F9E2AF"},
	Failed:  lipgloss.AdaptiveColor{Light: "#B3261E", Dark: "#F38BA8"},
	Frame:   lipgloss.AdaptiveColor{Light: "#CBBFAF", Dark: "#4A4238"},
	BarFill: lipgloss.AdaptiveColor{Light: "#EFE8DD", Dark: "#211D18"},
}

// Styles are the rendered styles every view shares.
type Styles struct {
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
}

// FromPalette builds the style set for p.
func FromPalette(p Palette) *Styles {
	fg := func(c lipgloss.AdaptiveColor) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	return &Styles{
		Title:      fg(p.Accent).Bold(true),
		Subtitle:   fg(p.Calm).Bold(true),
		Normal:     fg(p.Text),
		Muted:      fg(p.Faint),
		Selected:   fg(p.Text).Background(p.Accent).Bold(true),
		Error:      fg(p.Failed),
		Success:    fg(p.Synced),
		Warning:    fg(p.Local),
		InputField: lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(p.Frame).Padding(0, 1),
		StatusBar:  fg(p.Faint).Background(p.BarFill).Padding(0, 1),
		Help:       fg(p.Faint),
	}
}

// DefaultStyles returns the Studio styles.
func DefaultStyles() *Styles {
	return FromPalette(Studio)
}

// State renders a section sync state in its colour.
func (s *Styles) State(state domain.SectionState) string {
	switch state {
	case domain.SectionClean:
		return s.Success.Render("● synced")
	case domain.SectionPendingLocal:
		return s.Warning.Render("● saved locally")
	case domain.SectionError:
		return s.Error.Render("● failed")
	default:
		return s.Muted.Render("○ " + state.String())
	}
}

// Stars renders a rating as filled and empty stars.
func Stars(rating int) string {
	filled := min(max(rating, 0), domain.MaxRating)
	return strings.Repeat("★", filled) + strings.Repeat("☆", domain.MaxRating-filled)
}
