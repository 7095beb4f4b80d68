// Package settings provides the settings view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui/messages"
	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui/styles"
	"github.com/shubhraaj/sitecms/internal/core/domain"
	"github.com/shubhraaj/sitecms/internal/core/ports/driving"
)

// ErrNoSettingsService is reported when settings are used without a service.
var ErrNoSettingsService = errors.New("settings service not available")

// Config keys edited from this view.
const (
	keySyncPolicy       = "sync.policy"
	keyCacheDriver      = "cache.driver"
	keySchedulerEnabled = "scheduler.enabled"
)

// cacheDrivers is the order enter cycles through.
var cacheDrivers = []domain.CacheDriver{
	domain.CacheDriverSQLite,
	domain.CacheDriverBolt,
	domain.CacheDriverRedis,
	domain.CacheDriverMemory,
}

// row is one line of the settings list. key is empty for read-only rows.
type row struct {
	label string
	value string
	key   string
	next  string
}

// View shows application settings and toggles the editable ones.
type View struct {
	styles   *styles.Styles
	service  driving.SettingsService
	settings *domain.AppSettings
	err      error
	selected int
	width    int
	height   int
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, service driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		service: service,
	}
}

// Init loads the current settings.
func (v *View) Init() tea.Cmd {
	return v.load()
}

func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		if v.service == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}
		settings, err := v.service.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

func (v *View) set(key, value string) tea.Cmd {
	return func() tea.Msg {
		if v.service == nil {
			return messages.SettingsSaved{Key: key, Err: ErrNoSettingsService}
		}
		return messages.SettingsSaved{Key: key, Err: v.service.Set(key, value)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.SettingsLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.settings = msg.Settings
		}
		return v, nil

	case messages.SettingsSaved:
		v.err = msg.Err
		if msg.Err != nil {
			return v, nil
		}
		return v, v.load()

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	rows := v.rows()
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(rows)-1 {
			v.selected++
		}
	case "enter":
		if v.selected < len(rows) && rows[v.selected].key != "" {
			r := rows[v.selected]
			return v, v.set(r.key, r.next)
		}
	}
	return v, nil
}

// rows builds the displayed settings. Editable rows carry the value enter applies.
func (v *View) rows() []row {
	if v.settings == nil {
		return nil
	}
	s := v.settings

	policy := domain.SyncPolicyStrict
	if s.Sync.Policy == domain.SyncPolicyStrict {
		policy = domain.SyncPolicyFallbackLocal
	}

	upload := "not configured"
	if s.Upload.IsConfigured() {
		upload = s.Upload.Endpoint + "/" + s.Upload.Bucket
	}

	return []row{
		{label: "API", value: s.API.BaseURL},
		{label: "Sync policy", value: s.Sync.Policy.Description(), key: keySyncPolicy, next: policy.String()},
		{label: "Cache driver", value: s.Cache.Driver.String(), key: keyCacheDriver, next: nextDriver(s.Cache.Driver).String()},
		{
			label: "Scheduled pull",
			value: onOff(s.Scheduler.Enabled),
			key:   keySchedulerEnabled,
			next:  strconv.FormatBool(!s.Scheduler.Enabled),
		},
		{label: "Image uploads", value: upload},
	}
}

func nextDriver(current domain.CacheDriver) domain.CacheDriver {
	for i, d := range cacheDrivers {
		if d == current {
			return cacheDrivers[(i+1)%len(cacheDrivers)]
		}
	}
	return cacheDrivers[0]
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	for i, r := range v.rows() {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}
		line := fmt.Sprintf("%s%-15s %s", indicator, r.label, r.value)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Cache and scheduler changes apply on next start."))
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[enter] change  [↑/↓] navigate  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
