package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/gapscan"
	main "github.com/fwojciec/gapscan/cmd/gapscan"
	"github.com/fwojciec/gapscan/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the report with markup stripped", func(t *testing.T) {
		t.Parallel()

		reports := &mock.ReportService{
			FindReportByIDFn: func(_ context.Context, id string) (*gapscan.Report, error) {
				require.Equal(t, "rep-123", id)
				return &gapscan.Report{
					ID:             "rep-123",
					TargetURL:      "https://example.com/guide",
					TargetTitle:    "Marina District Guide",
					CompetitorURLs: []string{"https://comp.example/review"},
					CreatedAt:      time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC),
					Rows: []gapscan.GapRow{
						{
							Header:      "Cons",
							Description: "Important missing points: Pros & cons.",
							Source:      `<a href="https://comp.example/review" target="_blank" rel="noopener noreferrer">Comp</a>`,
						},
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Reports: reports,
		}

		cmd := &main.ShowCmd{ID: "rep-123"}

		err := cmd.Run(deps)

		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "Report rep-123")
		assert.Contains(t, output, "Marina District Guide")
		assert.Contains(t, output, "Competitor: https://comp.example/review")
		assert.Contains(t, output, "1. Cons")
		assert.Contains(t, output, "Important missing points: Pros & cons.")
		assert.Contains(t, output, "Source: Comp")
		assert.NotContains(t, output, "<a href")
	})

	t.Run("returns ENOTFOUND from the service", func(t *testing.T) {
		t.Parallel()

		reports := &mock.ReportService{
			FindReportByIDFn: func(_ context.Context, _ string) (*gapscan.Report, error) {
				return nil, gapscan.Errorf(gapscan.ENOTFOUND, "report not found")
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Reports: reports,
		}

		cmd := &main.ShowCmd{ID: "missing"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, gapscan.ENOTFOUND, gapscan.ErrorCode(err))
	})
}
