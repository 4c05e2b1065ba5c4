package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/NabeelAhmed1721/visionary/internal/store"
)

// API is the subset of the HTTP surface the flows depend on.
type API interface {
	ListPosts(ctx context.Context) ([]store.Post, error)
	CreatePost(ctx context.Context, name, prompt, photo string) (store.Post, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

// APIError is a non-200 answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return http.StatusText(e.Status)
	}
	return e.Message
}

// message is what an alert should show for err.
func message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}

type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string, client *http.Client) *HTTPClient {
	if client == nil {
		// generation can take most of a minute
		client = &http.Client{Timeout: 2 * time.Minute}
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

type postEnvelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
}

func (c *HTTPClient) ListPosts(ctx context.Context) ([]store.Post, error) {
	var out postEnvelope[[]store.Post]
	if err := c.do(ctx, http.MethodGet, "/api/v1/post", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *HTTPClient) CreatePost(ctx context.Context, name, prompt, photo string) (store.Post, error) {
	in := map[string]string{"name": name, "prompt": prompt, "photo": photo}
	var out postEnvelope[store.Post]
	if err := c.do(ctx, http.MethodPost, "/api/v1/post", in, &out); err != nil {
		return store.Post{}, err
	}
	return out.Data, nil
}

func (c *HTTPClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	var out struct {
		Photo string `json:"photo"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/dalle", map[string]string{"prompt": prompt}, &out); err != nil {
		return "", err
	}
	return out.Photo, nil
}

// FetchImage downloads a hosted photo.
func (c *HTTPClient) FetchImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return data, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &APIError{Status: resp.StatusCode, Message: errorBody(data)}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// errorBody extracts the message from either a JSON envelope or a plain
// text body.
func errorBody(data []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &envelope) == nil && envelope.Message != "" {
		return envelope.Message
	}
	return strings.TrimSpace(string(data))
}
