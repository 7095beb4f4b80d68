// Package status renders the one-line bar under every view.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui/keymap"
	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui/styles"
)

// State is what the bar leads with.
type State string

const (
	StateReady   State = "ready"
	StatePulling State = "pulling"
	StateOffline State = "offline"
	StateError   State = "error"
)

// Bar shows the app state, the last message, unsynced sections and key hints.
type Bar struct {
	styles  *styles.Styles
	keys    *keymap.KeyMap
	help    help.Model
	state   State
	message string
	pending int
	width   int
}

// NewBar returns a ready bar. Nil arguments take the defaults.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	h := help.New()
	h.ShortSeparator = " | "
	h.Styles.ShortKey = s.Muted
	h.Styles.ShortDesc = s.Muted
	h.Styles.ShortSeparator = s.Muted

	return &Bar{styles: s, keys: km, help: h, state: StateReady, width: 80}
}

// Show sets the state and message together.
func (b *Bar) Show(state State, message string) {
	b.state, b.message = state, message
}

// State returns the current state.
func (b *Bar) State() State { return b.state }

// Message returns the current message.
func (b *Bar) Message() string { return b.message }

// SetPending sets the number of sections not yet synced.
func (b *Bar) SetPending(n int) { b.pending = n }

// Pending returns the number of sections not yet synced.
func (b *Bar) Pending() int { return b.pending }

// SetWidth sets the bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
	b.help.Width = width / 2
}

// View renders the bar at its width.
func (b *Bar) View() string {
	left := b.summary()
	right := b.help.ShortHelpView(b.keys.ShortHelp())

	// Width includes the bar's padding, so the text gets what is left.
	inner := b.width - b.styles.StatusBar.GetHorizontalFrameSize()
	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (b *Bar) summary() string {
	var parts []string

	switch b.state {
	case StatePulling:
		parts = append(parts, b.styles.Muted.Render("Pulling..."))
	case StateOffline:
		parts = append(parts, b.styles.Warning.Render("Offline"))
	case StateError:
		parts = append(parts, b.styles.Error.Render("Error"))
	default:
		parts = append(parts, b.styles.Muted.Render("Ready"))
	}

	if b.message != "" {
		parts = append(parts, b.styles.Normal.Render(b.message))
	}

	switch {
	case b.pending == 1:
		parts = append(parts, b.styles.Warning.Render("1 section not synced"))
	case b.pending > 1:
		parts = append(parts, b.styles.Warning.Render(fmt.Sprintf("%d sections not synced", b.pending)))
	}

	return strings.Join(parts, " · ")
}
