package services

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shubhraaj/sitecms/internal/core/domain"
	"github.com/shubhraaj/sitecms/internal/core/ports/driven"
	"github.com/shubhraaj/sitecms/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyAPIBaseURL        = "api.base_url"
	keyAPITimeout        = "api.timeout_seconds"
	keyAPIRate           = "api.rate_per_second"
	keyCacheDriver       = "cache.driver"
	keyCacheDir          = "cache.dir"
	keyCacheRedisURL     = "cache.redis_url"
	keySyncPolicy        = "sync.policy"
	keySchedulerEnabled  = "scheduler.enabled"
	keySchedulerInterval = "scheduler.pull_interval_minutes"
	keyUploadEndpoint    = "upload.endpoint"
	keyUploadBucket      = "upload.bucket"
	keyUploadAccessKey   = "upload.access_key"
	keyUploadSecretKey   = "upload.secret_key"
	keyUploadUseSSL      = "upload.use_ssl"
	keyUploadPublicURL   = "upload.public_url"
	keyUploadPrefix      = "upload.folder_prefix"
	keyLogJSON           = "log.json"
)

// Environment overrides, checked before the config file.
const (
	EnvAPIURL   = "SITECMS_API_URL"
	EnvRedisURL = "SITECMS_REDIS_URL"
)

type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindBool
)

var settingKeys = map[string]keyKind{
	keyAPIBaseURL:        kindString,
	keyAPITimeout:        kindInt,
	keyAPIRate:           kindInt,
	keyCacheDriver:       kindString,
	keyCacheDir:          kindString,
	keyCacheRedisURL:     kindString,
	keySyncPolicy:        kindString,
	keySchedulerEnabled:  kindBool,
	keySchedulerInterval: kindInt,
	keyUploadEndpoint:    kindString,
	keyUploadBucket:      kindString,
	keyUploadAccessKey:   kindString,
	keyUploadSecretKey:   kindString,
	keyUploadUseSSL:      kindBool,
	keyUploadPublicURL:   kindString,
	keyUploadPrefix:      kindString,
	keyLogJSON:           kindBool,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		API: domain.APISettings{
			BaseURL:       s.getEnvString(EnvAPIURL, keyAPIBaseURL, defaults.API.BaseURL),
			Timeout:       time.Duration(s.getInt(keyAPITimeout, int(defaults.API.Timeout/time.Second))) * time.Second,
			RatePerSecond: s.getInt(keyAPIRate, defaults.API.RatePerSecond),
		},
		Cache: domain.CacheSettings{
			Driver:   s.getCacheDriver(defaults.Cache.Driver),
			Dir:      s.configStore.GetString(keyCacheDir), // Empty means "next to the config file"
			RedisURL: s.getEnvString(EnvRedisURL, keyCacheRedisURL, defaults.Cache.RedisURL),
		},
		Sync: domain.SyncSettings{
			Policy: s.getSyncPolicy(defaults.Sync.Policy),
		},
		Scheduler: s.GetSchedulerConfig(),
		Upload: domain.UploadSettings{
			Endpoint:     s.configStore.GetString(keyUploadEndpoint),
			Bucket:       s.configStore.GetString(keyUploadBucket),
			AccessKey:    s.configStore.GetString(keyUploadAccessKey),
			SecretKey:    s.configStore.GetString(keyUploadSecretKey),
			UseSSL:       s.getBool(keyUploadUseSSL, defaults.Upload.UseSSL),
			PublicURL:    s.configStore.GetString(keyUploadPublicURL),
			FolderPrefix: s.getString(keyUploadPrefix, defaults.Upload.FolderPrefix),
		},
		Log: domain.LogSettings{
			JSON: s.getBool(keyLogJSON, defaults.Log.JSON),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyAPIBaseURL, settings.API.BaseURL},
		{keyAPITimeout, int(settings.API.Timeout / time.Second)},
		{keyAPIRate, settings.API.RatePerSecond},
		{keyCacheDriver, settings.Cache.Driver.String()},
		{keyCacheDir, settings.Cache.Dir},
		{keyCacheRedisURL, settings.Cache.RedisURL},
		{keySyncPolicy, settings.Sync.Policy.String()},
		{keySchedulerEnabled, settings.Scheduler.Enabled},
		{keySchedulerInterval, int(settings.Scheduler.Interval() / time.Minute)},
		{keyUploadEndpoint, settings.Upload.Endpoint},
		{keyUploadBucket, settings.Upload.Bucket},
		{keyUploadUseSSL, settings.Upload.UseSSL},
		{keyUploadPublicURL, settings.Upload.PublicURL},
		{keyUploadPrefix, settings.Upload.FolderPrefix},
		{keyLogJSON, settings.Log.JSON},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// Only overwrite stored secrets when new ones are given
	if settings.Upload.AccessKey != "" {
		if err := s.configStore.Set(keyUploadAccessKey, settings.Upload.AccessKey); err != nil {
			return fmt.Errorf("save %s: %w", keyUploadAccessKey, err)
		}
	}
	if settings.Upload.SecretKey != "" {
		if err := s.configStore.Set(keyUploadSecretKey, settings.Upload.SecretKey); err != nil {
			return fmt.Errorf("save %s: %w", keyUploadSecretKey, err)
		}
	}

	return nil
}

// Set parses value according to the key's type and stores it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKeys[key]
	if !ok {
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}
	value = strings.TrimSpace(value)

	var parsed any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer: %w", key, domain.ErrInvalidInput)
		}
		parsed = n
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false: %w", key, domain.ErrInvalidInput)
		}
		parsed = b
	default:
		parsed = value
	}

	switch key {
	case keyCacheDriver:
		if !domain.CacheDriver(value).IsValid() {
			return fmt.Errorf("invalid cache driver %q: %w", value, domain.ErrInvalidInput)
		}
	case keySyncPolicy:
		if !domain.SyncPolicy(value).IsValid() {
			return fmt.Errorf("invalid sync policy %q: %w", value, domain.ErrInvalidInput)
		}
	case keyAPIBaseURL:
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("%s must be an http(s) URL: %w", key, domain.ErrInvalidInput)
		}
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Unset removes a stored value so the default applies again.
func (s *SettingsService) Unset(key string) error {
	if _, ok := settingKeys[key]; !ok {
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}
	if err := s.configStore.Unset(key); err != nil {
		return fmt.Errorf("unset %s: %w", key, err)
	}
	return nil
}

// Keys lists the recognised config keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKeys))
	for k := range settingKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if settings.API.BaseURL == "" {
		return fmt.Errorf("%s is required: %w", keyAPIBaseURL, domain.ErrInvalidInput)
	}
	if !strings.HasPrefix(settings.API.BaseURL, "http://") && !strings.HasPrefix(settings.API.BaseURL, "https://") {
		return fmt.Errorf("%s must be an http(s) URL: %w", keyAPIBaseURL, domain.ErrInvalidInput)
	}
	if settings.Cache.Driver == domain.CacheDriverRedis && settings.Cache.RedisURL == "" {
		return fmt.Errorf("%s is required for the redis driver: %w", keyCacheRedisURL, domain.ErrInvalidInput)
	}
	if settings.Upload.Endpoint != "" && settings.Upload.Bucket == "" {
		return fmt.Errorf("%s is required when %s is set: %w", keyUploadBucket, keyUploadEndpoint, domain.ErrInvalidInput)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// GetSchedulerConfig returns the background pull settings.
func (s *SettingsService) GetSchedulerConfig() domain.SchedulerConfig {
	defaults := domain.DefaultSchedulerConfig()

	defaults.Enabled = s.getBool(keySchedulerEnabled, defaults.Enabled)
	if minutes := s.configStore.GetInt(keySchedulerInterval); minutes > 0 {
		defaults.PullInterval = time.Duration(minutes) * time.Minute
	}
	return defaults
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getEnvString(env, key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(env)); val != "" {
		return val
	}
	return s.getString(key, defaultVal)
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getCacheDriver(defaultVal domain.CacheDriver) domain.CacheDriver {
	driver := domain.CacheDriver(s.configStore.GetString(keyCacheDriver))
	if !driver.IsValid() {
		return defaultVal
	}
	return driver
}

func (s *SettingsService) getSyncPolicy(defaultVal domain.SyncPolicy) domain.SyncPolicy {
	policy := domain.SyncPolicy(s.configStore.GetString(keySyncPolicy))
	if !policy.IsValid() {
		return defaultVal
	}
	return policy
}
