// Package report decouples the services from the logging backend used to
// record failures that are hidden from API callers.
package report

import (
	"context"
	"log/slog"
)

// Reporter records an error together with the operation that produced it.
type Reporter interface {
	Report(ctx context.Context, op string, err error, attrs ...any)
}

type slogReporter struct {
	logger *slog.Logger
}

// NewSlog returns a Reporter that writes to logger. A nil logger means slog.Default().
func NewSlog(logger *slog.Logger) Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogReporter{logger: logger}
}

func (r *slogReporter) Report(ctx context.Context, op string, err error, attrs ...any) {
	args := append([]any{"op", op, "error", err}, attrs...)
	r.logger.ErrorContext(ctx, op+": failed", args...)
}

// Discard drops every report.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Report(context.Context, string, error, ...any) {}
