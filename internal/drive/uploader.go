package drive

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/mvidal/drivepdf-api/internal/storage"
)

const shareableURLFormat = "https://drive.google.com/file/d/%s/view?usp=sharing"

// ShareableURL returns the browser link for a Drive file identifier.
func ShareableURL(fileID string) string {
	return fmt.Sprintf(shareableURLFormat, fileID)
}

// Uploader implements storage.Uploader against the Drive v3 API.
// Credentials are resolved on every upload, so a rotated refresh token or a
// newly provisioned key file takes effect without a restart.
type Uploader struct {
	creds Credentials
}

// NewUploader creates an Uploader with the given credential sources.
func NewUploader(creds Credentials) *Uploader {
	return &Uploader{creds: creds}
}

// Upload creates the file inside folderID and returns the Drive-assigned
// identifier with its shareable URL. Credential errors pass through
// unwrapped; every provider failure is wrapped in storage.ErrUpload.
func (u *Uploader) Upload(ctx context.Context, localPath, name, folderID string) (storage.Result, error) {
	ts, err := u.creds.TokenSource(ctx)
	if err != nil {
		return storage.Result{}, err
	}

	srv, err := gdrive.NewService(ctx, option.WithHTTPClient(oauth2.NewClient(ctx, ts)))
	if err != nil {
		return storage.Result{}, fmt.Errorf("%w: create drive service: %v", storage.ErrUpload, err)
	}

	f, err := os.Open(localPath)
	if err != nil {
		return storage.Result{}, fmt.Errorf("%w: open %s: %v", storage.ErrUpload, localPath, err)
	}
	defer func() { _ = f.Close() }()

	meta := &gdrive.File{Name: name}
	if folderID != "" {
		meta.Parents = []string{folderID}
	}

	res, err := srv.Files.Create(meta).
		Media(f, googleapi.ContentType("application/pdf")).
		SupportsAllDrives(true).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return storage.Result{}, fmt.Errorf("%w: %v", storage.ErrUpload, err)
	}
	if res.Id == "" {
		return storage.Result{}, storage.ErrNoFileID
	}

	return storage.Result{
		FileID:       res.Id,
		ShareableURL: ShareableURL(res.Id),
	}, nil
}
