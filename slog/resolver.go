// Package slog provides logging decorators for the gapscan interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/gapscan"
)

// Ensure LoggingResolver implements gapscan.Resolver.
var _ gapscan.Resolver = (*LoggingResolver)(nil)

// LoggingResolver wraps a Resolver with fetch logging.
type LoggingResolver struct {
	next   gapscan.Resolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next gapscan.Resolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// Resolve logs the resolution outcome and delegates to the wrapped
// resolver.
func (r *LoggingResolver) Resolve(ctx context.Context, url string) (doc *gapscan.Document, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		}
		if doc != nil {
			attrs = append(attrs,
				"success", doc.Success,
				"source", doc.SourceLabel,
				"status", doc.StatusCode,
				"textLen", len(doc.ExtractedText),
			)
		}
		r.logger.Info("resolve", attrs...)
	}(time.Now())
	return r.next.Resolve(ctx, url)
}

// Close delegates to the wrapped resolver.
func (r *LoggingResolver) Close() error {
	return r.next.Close()
}
