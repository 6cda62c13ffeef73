// Package drive implements the Google Drive storage backend. Credentials
// come from either a service account key file or a pre-authorized user's
// refresh token; both resolve to an oauth2 token source scoped to files the
// app creates.
package drive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gdrive "google.golang.org/api/drive/v3"
)

var (
	// ErrNotConfigured is returned when neither credential source is fully
	// configured.
	ErrNotConfigured = errors.New("drive: credentials not configured, set GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET/GOOGLE_REFRESH_TOKEN")
	// ErrTokenExchange is returned when the identity provider rejects the
	// refresh token exchange.
	ErrTokenExchange = errors.New("drive: refresh token exchange rejected")
)

// Credentials holds the two supported credential sources. The service
// account file wins when it exists on disk; otherwise the full refresh-token
// trio is required.
type Credentials struct {
	ServiceAccountFile string
	ClientID           string
	ClientSecret       string
	RefreshToken       string
}

// TokenSource resolves the configured credential source into an oauth2 token
// source. The refresh-token path performs a synchronous token exchange
// before returning, so a rejected refresh token surfaces here rather than
// mid-upload.
func (c Credentials) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	if c.ServiceAccountFile != "" {
		if _, err := os.Stat(c.ServiceAccountFile); err == nil {
			data, err := os.ReadFile(c.ServiceAccountFile)
			if err != nil {
				return nil, fmt.Errorf("drive: read service account file: %w", err)
			}
			jwtCfg, err := google.JWTConfigFromJSON(data, gdrive.DriveFileScope)
			if err != nil {
				return nil, fmt.Errorf("drive: parse service account file: %w", err)
			}
			return jwtCfg.TokenSource(ctx), nil
		}
	}

	if c.ClientID == "" || c.ClientSecret == "" || c.RefreshToken == "" {
		return nil, ErrNotConfigured
	}

	conf := &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Scopes:       []string{gdrive.DriveFileScope},
		Endpoint:     google.Endpoint,
	}

	// An already-expired token forces the source to exchange the refresh
	// token immediately.
	seed := &oauth2.Token{
		RefreshToken: c.RefreshToken,
		Expiry:       time.Now().Add(-1 * time.Hour),
	}

	ts := conf.TokenSource(ctx, seed)
	if _, err := ts.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenExchange, err)
	}

	return ts, nil
}
