package bootstrap

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvidal/drivepdf-api/internal/config"
	"github.com/mvidal/drivepdf-api/internal/drive"
	"github.com/mvidal/drivepdf-api/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestNewDependencies_DriveDefault(t *testing.T) {
	cfg := &config.Config{
		TempDir:        t.TempDir(),
		MaxUploadBytes: 1024,
		UploadWorkers:  4,
		ClientID:       "id",
		ClientSecret:   "secret",
		RefreshToken:   "token",
	}

	deps, err := NewDependencies(cfg, testLogger())
	require.NoError(t, err)

	assert.NotNil(t, deps.Receiver)
	assert.Equal(t, 4, deps.Pool.Size())
	assert.IsType(t, &drive.Uploader{}, deps.Uploader)
}

func TestNewDependencies_S3Backend(t *testing.T) {
	cfg := &config.Config{
		TempDir:            t.TempDir(),
		MaxUploadBytes:     1024,
		UploadWorkers:      2,
		S3Bucket:           "uploads",
		S3Region:           "eu-west-1",
		AWSAccessKeyID:     "key",
		AWSSecretAccessKey: "secret",
	}

	deps, err := NewDependencies(cfg, testLogger())
	require.NoError(t, err)

	assert.IsType(t, &storage.S3Uploader{}, deps.Uploader)
}
