package driving

import "github.com/shubhraaj/sitecms/internal/core/domain"

// SettingsService reads and edits ~/.sitecms/config.toml. Keys are the dotted
// names listed by Keys, e.g. "api.base_url" or "sync.policy"; environment
// overrides apply on Get but are never written back.
type SettingsService interface {
	Get() (*domain.AppSettings, error)
	Save(settings *domain.AppSettings) error

	// Set parses value for key's type, checks it and persists it. Nothing is
	// written when the value is rejected. Cross-key rules are left to Validate.
	Set(key, value string) error

	// Unset removes key so its default applies again.
	Unset(key string) error

	Keys() []string
	Validate() error
	GetDefaults() domain.AppSettings
}
