package driven

// ConfigStore holds the sitecms settings as flat dot-separated keys
// such as "api.base_url". Implementations handle persistence and
// type conversion; values set here are written through immediately.
type ConfigStore interface {
	// Get retrieves a value and reports whether the key is set.
	Get(key string) (any, bool)

	// GetString returns "" if the key is unset or not a string.
	GetString(key string) string

	// GetInt returns 0 if the key is unset or not a number.
	GetInt(key string) int

	// GetBool returns false if the key is unset or not a boolean.
	GetBool(key string) bool

	// Set stores a value and persists it.
	Set(key string, value any) error

	// Unset removes a key and persists the change. Unknown keys are ignored.
	Unset(key string) error

	// Save persists the current values.
	Save() error

	// Load re-reads values from storage.
	Load() error

	// Path returns where the values are stored, or "" for memory stores.
	Path() string
}
