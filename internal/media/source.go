package media

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrEmptySource is returned when there is nothing to upload.
var ErrEmptySource = errors.New("empty image source")

// Source is an image to upload: either a remote URL or inline bytes.
type Source struct {
	URL      string
	Data     []byte
	MIMEType string
}

// ParseSource interprets a client-supplied photo field. It accepts http(s)
// URLs, data URIs and bare base64 payloads (assumed PNG).
func ParseSource(photo string) (Source, error) {
	photo = strings.TrimSpace(photo)
	switch {
	case photo == "":
		return Source{}, ErrEmptySource
	case strings.HasPrefix(photo, "http://"), strings.HasPrefix(photo, "https://"):
		return Source{URL: photo}, nil
	case strings.HasPrefix(photo, "data:"):
		meta, payload, ok := strings.Cut(strings.TrimPrefix(photo, "data:"), ",")
		if !ok || !strings.HasSuffix(meta, ";base64") {
			return Source{}, errors.New("photo data uri must be base64 encoded")
		}
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return Source{}, fmt.Errorf("decode photo data uri: %w", err)
		}
		mime := strings.TrimSuffix(meta, ";base64")
		if mime == "" {
			mime = "image/png"
		}
		return Source{Data: data, MIMEType: mime}, nil
	default:
		data, err := base64.StdEncoding.DecodeString(photo)
		if err != nil {
			return Source{}, fmt.Errorf("photo is neither a url nor base64 data: %w", err)
		}
		return Source{Data: data, MIMEType: "image/png"}, nil
	}
}

// DataURI renders inline data as a base64 data URI.
func (s Source) DataURI() string {
	return "data:" + s.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(s.Data)
}

func (s Source) empty() bool {
	return s.URL == "" && len(s.Data) == 0
}

// fetch downloads a remote source into memory.
func fetch(ctx context.Context, client *http.Client, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("image download returned status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = http.DetectContentType(data)
	}
	return data, mime, nil
}

func extension(mime string) string {
	switch strings.TrimSpace(strings.Split(mime, ";")[0]) {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}
