package imagegen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI generates images through the OpenAI images API and returns the
// provider-hosted URL, which expires after a short while.
type OpenAI struct {
	client *openai.Client
	model  string
}

func NewOpenAI(apiKey, baseURL, model string) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (g *OpenAI) Generate(ctx context.Context, prompt string) (Image, error) {
	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          g.model,
		N:              1,
		Size:           Size,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return Image{}, &ProviderError{Provider: "openai", Message: apiErr.Message, Err: err}
		}
		return Image{}, fmt.Errorf("openai create image: %w", err)
	}

	if len(resp.Data) == 0 || strings.TrimSpace(resp.Data[0].URL) == "" {
		return Image{}, errors.New("openai returned no image url")
	}
	return Image{URL: resp.Data[0].URL}, nil
}
