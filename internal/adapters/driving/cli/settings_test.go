package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubhraaj/sitecms/internal/core/domain"
)

func TestSettingsShow_Defaults(t *testing.T) {
	useServices(t, &Services{Settings: newMockSettings()})

	out, err := run(t, "", "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Base URL: http://localhost:5000")
	assert.Contains(t, out, "Driver: sqlite")
	assert.Contains(t, out, "Directory: (default)")
	assert.Contains(t, out, "Policy: Fallback local")
	assert.Contains(t, out, "Enabled: yes")
	assert.Contains(t, out, "Pull interval: 15m0s")
	assert.Contains(t, out, "Status: not configured")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsShow_RedisAndUpload(t *testing.T) {
	settings := newMockSettings()
	settings.settings.Cache.Driver = domain.CacheDriverRedis
	settings.settings.Scheduler.Enabled = false
	settings.settings.Upload = domain.UploadSettings{
		Endpoint:     "s3.example.com",
		Bucket:       "media",
		AccessKey:    "AKIAEXAMPLEKEY",
		SecretKey:    "short",
		FolderPrefix: "shubhraaj",
	}
	settings.validateErr = errors.New("upload.public_url is required")
	useServices(t, &Services{Settings: settings})

	out, err := run(t, "", "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Redis URL: redis://localhost:6379/0")
	assert.Contains(t, out, "Enabled: no")
	assert.Contains(t, out, "Bucket: media")
	assert.Contains(t, out, "Access Key: AKIA...EKEY")
	assert.Contains(t, out, "Secret Key: ****")
	assert.Contains(t, out, "Folder: shubhraaj/projects/<title>")
	assert.Contains(t, out, "Warning: upload.public_url is required")
}

func TestSettingsSet(t *testing.T) {
	settings := newMockSettings()
	useServices(t, &Services{Settings: settings})

	out, err := run(t, "", "settings", "set", "sync.policy", "strict")

	require.NoError(t, err)
	assert.Equal(t, "strict", settings.set["sync.policy"])
	assert.Contains(t, out, "Set sync.policy.")
}

func TestSettingsSet_Error(t *testing.T) {
	settings := newMockSettings()
	settings.setErr = domain.ErrInvalidInput
	useServices(t, &Services{Settings: settings})

	_, err := run(t, "", "settings", "set", "cache.driver", "mongo")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsUnset(t *testing.T) {
	settings := newMockSettings()
	useServices(t, &Services{Settings: settings})

	out, err := run(t, "", "settings", "unset", "api.base_url")

	require.NoError(t, err)
	assert.Equal(t, []string{"api.base_url"}, settings.unset)
	assert.Contains(t, out, "Restored api.base_url to its default.")
}

func TestSettingsKeys(t *testing.T) {
	useServices(t, &Services{Settings: newMockSettings()})

	out, err := run(t, "", "settings", "keys")

	require.NoError(t, err)
	assert.Contains(t, out, "api.base_url\nsync.policy\n")
}

func TestSettings_RequireService(t *testing.T) {
	useServices(t, &Services{})

	_, err := run(t, "", "settings", "keys")

	assert.ErrorContains(t, err, "settings service not configured")
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "(not set)"},
		{"abc123", "****"},
		{"12345678", "****"},
		{"sk-1234567890abcdef", "sk-1...cdef"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, maskSecret(tt.input), tt.input)
	}
}
