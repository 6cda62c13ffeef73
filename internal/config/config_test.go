package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT",
		"GOOGLE_SERVICE_ACCOUNT_FILE",
		"GOOGLE_CLIENT_ID",
		"GOOGLE_CLIENT_SECRET",
		"GOOGLE_REFRESH_TOKEN",
		"TEMP_DIR",
		"MAX_UPLOAD_BYTES",
		"UPLOAD_WORKERS",
		"S3_BUCKET",
		"S3_REGION",
		"AWS_ACCESS_KEY_ID",
		"AWS_SECRET_ACCESS_KEY",
		"LOG_FORMAT",
		"LOG_LEVEL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, int64(20*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, 4, cfg.UploadWorkers)
	assert.Equal(t, filepath.Join(os.TempDir(), "drivepdf"), cfg.TempDir)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("TEMP_DIR", "/custom/temp")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("UPLOAD_WORKERS", "8")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "/custom/temp", cfg.TempDir)
	assert.Equal(t, int64(1048576), cfg.MaxUploadBytes)
	assert.Equal(t, 8, cfg.UploadWorkers)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestDriveConfigured(t *testing.T) {
	t.Run("service account file alone is enough", func(t *testing.T) {
		cfg := &Config{ServiceAccountFile: "/etc/creds/sa.json"}
		assert.True(t, cfg.DriveConfigured())
	})

	t.Run("full refresh token trio is enough", func(t *testing.T) {
		cfg := &Config{
			ClientID:     "id",
			ClientSecret: "secret",
			RefreshToken: "token",
		}
		assert.True(t, cfg.DriveConfigured())
	})

	t.Run("partial trio is not configured", func(t *testing.T) {
		cfg := &Config{ClientID: "id", ClientSecret: "secret"}
		assert.False(t, cfg.DriveConfigured())
	})

	t.Run("empty config is not configured", func(t *testing.T) {
		cfg := &Config{}
		assert.False(t, cfg.DriveConfigured())
	})
}

func TestS3Enabled(t *testing.T) {
	cfg := &Config{S3Bucket: "uploads", S3Region: "eu-west-1"}
	assert.True(t, cfg.S3Enabled())

	cfg = &Config{S3Bucket: "uploads"}
	assert.False(t, cfg.S3Enabled())
}

func TestString_MasksSecrets(t *testing.T) {
	cfg := &Config{
		ClientSecret: "super-secret",
		RefreshToken: "refresh-secret",
	}
	s := cfg.String()
	assert.NotContains(t, s, "super-secret")
	assert.NotContains(t, s, "refresh-secret")
}
