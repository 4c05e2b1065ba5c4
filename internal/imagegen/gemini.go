package imagegen

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Gemini generates images with a Gemini image model. The image comes back
// inline, so callers must host it themselves.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates the Gemini client. baseURL overrides the API endpoint and
// is empty in production.
func NewGemini(ctx context.Context, apiKey, model, baseURL string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	cc := &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (Image, error) {
	res, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		if msg := apiMessage(err); msg != "" {
			return Image{}, &ProviderError{Provider: "gemini", Message: msg, Err: err}
		}
		return Image{}, fmt.Errorf("gemini generate: %w", err)
	}
	if res == nil || len(res.Candidates) == 0 || res.Candidates[0] == nil || res.Candidates[0].Content == nil {
		return Image{}, errors.New("gemini returned no candidates")
	}

	for _, part := range res.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			mime := part.InlineData.MIMEType
			if mime == "" {
				mime = "image/png"
			}
			return Image{Data: part.InlineData.Data, MIMEType: mime}, nil
		}
	}
	return Image{}, errors.New("gemini returned no image data")
}

// apiMessage returns the message of a genai API error body, if err carries one.
func apiMessage(err error) string {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Message
	}
	return ""
}
