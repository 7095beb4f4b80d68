package domain

import "time"

// CacheDriver selects the durable local cache backend.
type CacheDriver string

// Available cache drivers.
const (
	// CacheDriverSQLite stores slots in a SQLite database file.
	CacheDriverSQLite CacheDriver = "sqlite"

	// CacheDriverBolt stores slots in a bbolt database file.
	CacheDriverBolt CacheDriver = "bolt"

	// CacheDriverRedis stores slots in Redis.
	CacheDriverRedis CacheDriver = "redis"

	// CacheDriverMemory keeps slots in process memory only.
	CacheDriverMemory CacheDriver = "memory"
)

// IsValid returns true if the driver is recognised.
func (d CacheDriver) IsValid() bool {
	switch d {
	case CacheDriverSQLite, CacheDriverBolt, CacheDriverRedis, CacheDriverMemory:
		return true
	default:
		return false
	}
}

// IsFileBacked returns true if the driver persists to a local file.
func (d CacheDriver) IsFileBacked() bool {
	return d == CacheDriverSQLite || d == CacheDriverBolt
}

// String returns the string representation.
func (d CacheDriver) String() string {
	return string(d)
}

// APISettings configures the remote content API.
type APISettings struct {
	// BaseURL is the content API origin, e.g. http://localhost:5000.
	BaseURL string

	// Timeout bounds each request.
	Timeout time.Duration

	// RatePerSecond limits outgoing requests.
	RatePerSecond int
}

// CacheSettings configures the durable local cache.
type CacheSettings struct {
	Driver   CacheDriver
	Dir      string
	RedisURL string
}

// SyncSettings configures mutation behaviour.
type SyncSettings struct {
	Policy SyncPolicy
}

// UploadSettings configures the S3-compatible image host.
type UploadSettings struct {
	Endpoint     string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UseSSL       bool
	PublicURL    string
	FolderPrefix string
}

// IsConfigured returns true if uploads can be attempted.
func (u UploadSettings) IsConfigured() bool {
	return u.Endpoint != "" && u.Bucket != ""
}

// LogSettings configures log output.
type LogSettings struct {
	JSON bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	API       APISettings
	Cache     CacheSettings
	Sync      SyncSettings
	Scheduler SchedulerConfig
	Upload    UploadSettings
	Log       LogSettings
}

// Defaults used when a setting is absent.
const (
	DefaultAPIBaseURL    = "http://localhost:5000"
	DefaultAPITimeout    = 15 * time.Second
	DefaultRatePerSecond = 5
	DefaultRedisURL      = "redis://localhost:6379/0"
	DefaultFolderPrefix  = "shubhraaj"
)

// DefaultAppSettings returns settings with sensible defaults.
// Uploads are left unconfigured until an endpoint and bucket are set.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL:       DefaultAPIBaseURL,
			Timeout:       DefaultAPITimeout,
			RatePerSecond: DefaultRatePerSecond,
		},
		Cache: CacheSettings{
			Driver:   CacheDriverSQLite,
			RedisURL: DefaultRedisURL,
		},
		Sync: SyncSettings{
			Policy: SyncPolicyFallbackLocal,
		},
		Scheduler: DefaultSchedulerConfig(),
		Upload: UploadSettings{
			FolderPrefix: DefaultFolderPrefix,
		},
	}
}

// AllCacheDrivers returns all available cache drivers.
func AllCacheDrivers() []CacheDriver {
	return []CacheDriver{CacheDriverSQLite, CacheDriverBolt, CacheDriverRedis, CacheDriverMemory}
}
