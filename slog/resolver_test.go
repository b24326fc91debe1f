package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/gapscan"
	"github.com/fwojciec/gapscan/mock"
	gapslog "github.com/fwojciec/gapscan/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("logs resolution outcome", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Resolver{
			ResolveFn: func(ctx context.Context, url string) (*gapscan.Document, error) {
				return &gapscan.Document{
					Success:       true,
					SourceLabel:   "direct",
					StatusCode:    200,
					ExtractedText: "article text",
				}, nil
			},
		}

		r := gapslog.NewLoggingResolver(inner, logger)
		doc, err := r.Resolve(context.Background(), "https://example.com/guide")

		require.NoError(t, err)
		assert.True(t, doc.Success)
		output := buf.String()
		assert.Contains(t, output, "resolve")
		assert.Contains(t, output, "url=https://example.com/guide")
		assert.Contains(t, output, "success=true")
		assert.Contains(t, output, "source=direct")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Resolver{
			ResolveFn: func(ctx context.Context, url string) (*gapscan.Document, error) {
				return nil, errors.New("network error")
			},
		}

		r := gapslog.NewLoggingResolver(inner, logger)
		_, err := r.Resolve(context.Background(), "https://example.com/guide")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"network error\"")
	})

	t.Run("close delegates to inner resolver", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		closeCalled := false
		inner := &mock.Resolver{
			CloseFn: func() error {
				closeCalled = true
				return nil
			},
		}

		r := gapslog.NewLoggingResolver(inner, logger)
		err := r.Close()

		require.NoError(t, err)
		assert.True(t, closeCalled)
	})
}
