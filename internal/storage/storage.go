// Package storage defines the uploader port for cloud storage backends.
// Implementations exist for Google Drive (the default) and S3, selected at
// bootstrap time.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// Upload errors shared by all backends.
var (
	// ErrUpload wraps any provider-side upload failure.
	ErrUpload = errors.New("storage: upload failed")
	// ErrNoFileID is returned when the provider accepts the upload but
	// returns no identifier. It matches ErrUpload under errors.Is.
	ErrNoFileID = fmt.Errorf("%w: no file id returned by provider", ErrUpload)
)

// Result is the outcome of a successful upload.
type Result struct {
	// FileID is the provider-assigned identifier of the uploaded object.
	FileID string
	// ShareableURL is a browser-accessible link to the uploaded object.
	ShareableURL string
}

// Uploader sends a locally buffered file to a cloud storage backend.
// Upload blocks for the duration of the provider call; callers run it off
// the request goroutine.
type Uploader interface {
	// Upload stores the file at localPath under the given name inside
	// folderID and returns the provider identifier plus a shareable URL.
	// Failures are reported wrapped in ErrUpload.
	Upload(ctx context.Context, localPath, name, folderID string) (Result, error)
}
