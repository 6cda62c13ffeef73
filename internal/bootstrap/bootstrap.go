// Package bootstrap provides dependency initialization for the uploader service.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/mvidal/drivepdf-api/internal/config"
	"github.com/mvidal/drivepdf-api/internal/drive"
	"github.com/mvidal/drivepdf-api/internal/storage"
	"github.com/mvidal/drivepdf-api/internal/upload"
	"github.com/mvidal/drivepdf-api/internal/worker"
)

// Dependencies holds all initialized dependencies for the HTTP server.
type Dependencies struct {
	Receiver *upload.Receiver
	Uploader storage.Uploader
	Pool     *worker.Pool
}

// NewDependencies creates and initializes all dependencies for the application.
func NewDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	receiver, err := upload.NewReceiver(cfg.TempDir, cfg.MaxUploadBytes)
	if err != nil {
		return nil, fmt.Errorf("create upload receiver: %w", err)
	}

	uploader, err := initUploader(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Dependencies{
		Receiver: receiver,
		Uploader: uploader,
		Pool:     worker.NewPool(cfg.UploadWorkers),
	}, nil
}

// initUploader selects the storage backend based on configuration. Google
// Drive is the default; S3 takes over when a bucket and region are set.
func initUploader(cfg *config.Config, logger *slog.Logger) (storage.Uploader, error) {
	if cfg.S3Enabled() {
		s3Uploader, err := storage.NewS3Uploader(storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
		if err != nil {
			return nil, fmt.Errorf("create S3 uploader: %w", err)
		}
		logger.Info("S3 backend configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
		)
		return s3Uploader, nil
	}

	if !cfg.DriveConfigured() {
		logger.Warn("no Drive credentials configured, uploads will fail until GOOGLE_SERVICE_ACCOUNT_FILE or the client id/secret/refresh token trio is set")
	}

	return drive.NewUploader(drive.Credentials{
		ServiceAccountFile: cfg.ServiceAccountFile,
		ClientID:           cfg.ClientID,
		ClientSecret:       cfg.ClientSecret,
		RefreshToken:       cfg.RefreshToken,
	}), nil
}
