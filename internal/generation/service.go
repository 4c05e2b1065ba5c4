// Package generation turns a prompt into a hosted image URL. It never stores
// posts; sharing is a separate step taken by the client.
package generation

import (
	"context"
	"errors"
	"fmt"

	"github.com/NabeelAhmed1721/visionary/internal/imagegen"
	"github.com/NabeelAhmed1721/visionary/internal/media"
	"github.com/NabeelAhmed1721/visionary/internal/report"
)

const fallbackMessage = "Something went wrong"

// ErrEmptyPrompt is returned before any provider call when the prompt is blank.
var ErrEmptyPrompt = errors.New("prompt is required")

type Service struct {
	generator imagegen.Generator
	host      media.Host
	folder    string
	reporter  report.Reporter
}

func NewService(g imagegen.Generator, host media.Host, folder string, reporter report.Reporter) *Service {
	return &Service{
		generator: g,
		host:      host,
		folder:    folder,
		reporter:  reporter,
	}
}

// Generate asks the provider for one image and re-hosts it under the
// service's folder, returning the hosted URL.
func (s *Service) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	img, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.reporter.Report(ctx, "generateImage", err, "stage", "generate")
		return "", fmt.Errorf("generate image: %w", err)
	}

	src := media.Source{URL: img.URL, Data: img.Data, MIMEType: img.MIMEType}
	hosted, err := s.host.Upload(ctx, src, s.folder)
	if err != nil {
		s.reporter.Report(ctx, "generateImage", err, "stage", "upload")
		return "", fmt.Errorf("host image: %w", err)
	}
	return hosted, nil
}

// ErrorMessage picks the text shown to callers: the provider's own message
// when one was extracted, otherwise a generic fallback.
func ErrorMessage(err error) string {
	if errors.Is(err, ErrEmptyPrompt) {
		return ErrEmptyPrompt.Error()
	}
	var genErr *imagegen.ProviderError
	if errors.As(err, &genErr) && genErr.Message != "" {
		return genErr.Message
	}
	var hostErr *media.ProviderError
	if errors.As(err, &hostErr) && hostErr.Message != "" {
		return hostErr.Message
	}
	return fallbackMessage
}
