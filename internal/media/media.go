// Package media re-hosts images on a durable media store so served assets do
// not depend on short-lived generation URLs.
package media

import (
	"context"
	"fmt"

	"github.com/NabeelAhmed1721/visionary/internal/config"
)

// Host uploads an image into folder and returns its hosted URL.
type Host interface {
	Upload(ctx context.Context, src Source, folder string) (string, error)
}

// ProviderError carries the message a hosting provider put in its error payload.
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// New builds the host named by cfg.MediaDriver.
func New(ctx context.Context, cfg config.Config) (Host, error) {
	switch cfg.MediaDriver {
	case "cloudinary":
		return NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	case "s3":
		host, err := NewS3(S3Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			UseSSL:    cfg.S3UseSSL,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			return nil, err
		}
		if err := host.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("s3 ensure bucket: %w", err)
		}
		return host, nil
	default:
		return nil, fmt.Errorf("unsupported media driver: %s", cfg.MediaDriver)
	}
}
