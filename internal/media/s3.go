package media

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/xid"
)

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL is the base under which objects are served. Defaults to the
	// path-style bucket URL on Endpoint.
	PublicURL string
	Region    string
}

// S3 stores images in an S3-compatible bucket that is readable by clients.
type S3 struct {
	cfg    S3Config
	client *minio.Client
	http   *http.Client
}

func NewS3(cfg S3Config) (*S3, error) {
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "http://"), "https://")
	cl, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}

	if cfg.PublicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		cfg.PublicURL = fmt.Sprintf("%s://%s/%s", scheme, endpoint, cfg.Bucket)
	}
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")

	return &S3{cfg: cfg, client: cl, http: http.DefaultClient}, nil
}

func (s *S3) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return err
	}
	if !exists {
		return s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{Region: s.cfg.Region})
	}
	return nil
}

func (s *S3) Upload(ctx context.Context, src Source, folder string) (string, error) {
	if src.empty() {
		return "", ErrEmptySource
	}
	data, mime := src.Data, src.MIMEType
	if src.URL != "" {
		var err error
		data, mime, err = fetch(ctx, s.http, src.URL)
		if err != nil {
			return "", err
		}
	}

	key := path.Join(folder, xid.New().String()+extension(mime))
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: mime,
	})
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Message != "" {
			return "", &ProviderError{Provider: "s3", Message: resp.Message, Err: err}
		}
		return "", fmt.Errorf("s3 put object: %w", err)
	}
	return s.cfg.PublicURL + "/" + key, nil
}
