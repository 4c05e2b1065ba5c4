// Package imagegen wraps text-to-image providers behind a single call that
// turns a prompt into one image reference.
package imagegen

import (
	"context"
	"fmt"

	"github.com/NabeelAhmed1721/visionary/internal/config"
)

// Size is the only resolution requested from providers.
const Size = "1024x1024"

// Image references a generated picture. Providers that host their output set
// URL; providers that return the bytes inline set Data and MIMEType.
type Image struct {
	URL      string
	Data     []byte
	MIMEType string
}

type Generator interface {
	Generate(ctx context.Context, prompt string) (Image, error)
}

// ProviderError carries the message a provider put in its error payload.
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

// New builds the generator named by cfg.ImageProvider.
func New(ctx context.Context, cfg config.Config) (Generator, error) {
	switch cfg.ImageProvider {
	case "openai":
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIImageModel), nil
	case "gemini":
		return NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiImageModel, "")
	default:
		return nil, fmt.Errorf("unsupported image provider: %s", cfg.ImageProvider)
	}
}
