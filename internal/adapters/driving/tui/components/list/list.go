// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui/styles"
)

// Item is one row of a List.
type Item struct {
	// Title is the main line.
	Title string

	// Detail is an optional muted line under the title.
	Detail string
}

// List displays items in a navigable, scrolling list.
type List struct {
	title    string
	empty    string
	items    []Item
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// New creates a list with a header title and a placeholder for no items.
func New(s *styles.Styles, title, empty string) *List {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &List{
		title:  title,
		empty:  empty,
		styles: s,
		width:  80,
		height: 20,
	}
}

// Init initialises the list.
func (l *List) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *List) Update(msg tea.Msg) (*List, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the list.
func (l *List) View() string {
	header := l.styles.Subtitle.Render(fmt.Sprintf("%s (%d)", l.title, len(l.items)))
	if len(l.items) == 0 {
		return header + "\n\n" + l.styles.Muted.Render(l.empty)
	}

	lines := make([]string, 0, len(l.items)*2+2)
	lines = append(lines, header, "")

	// Each item takes up to two lines.
	visibleCount := (l.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := min(start+visibleCount, len(l.items))

	for i := start; i < end; i++ {
		lines = append(lines, l.renderItem(i, l.items[i]))
	}

	return strings.Join(lines, "\n")
}

func (l *List) renderItem(index int, item Item) string {
	title := truncate(item.Title, max(l.width-6, 10))

	var line string
	if index == l.selected {
		line = l.styles.Selected.Render("> " + title)
	} else {
		line = l.styles.Normal.Render("  " + title)
	}

	if item.Detail != "" {
		line += "\n" + l.styles.Muted.Render("    "+truncate(item.Detail, max(l.width-6, 20)))
	}
	return line
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// SetItems replaces the items, keeping the selection in range.
func (l *List) SetItems(items []Item) {
	l.items = items
	if l.selected >= len(items) {
		l.selected = max(len(items)-1, 0)
	}
}

// Items returns the current items.
func (l *List) Items() []Item {
	return l.items
}

// Selected returns the index of the selected item.
func (l *List) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *List) SetSelected(index int) {
	if index >= 0 && index < len(l.items) {
		l.selected = index
	}
}

// MoveUp moves selection up.
func (l *List) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *List) MoveDown() {
	if l.selected < len(l.items)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *List) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of items.
func (l *List) Count() int {
	return len(l.items)
}

// IsEmpty returns whether the list is empty.
func (l *List) IsEmpty() bool {
	return len(l.items) == 0
}
