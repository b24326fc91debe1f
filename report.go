package gapscan

import (
	"context"
	"time"
)

// Report is a stored content gap analysis: one target article compared
// against one or more competitor articles, with the resulting gap rows.
type Report struct {
	ID             string    `json:"id"`
	TargetURL      string    `json:"targetUrl"`
	TargetTitle    string    `json:"targetTitle"`
	CompetitorURLs []string  `json:"competitorUrls"`
	ContentHash    string    `json:"contentHash"`
	Rows           []GapRow  `json:"rows"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Validate returns an error if the report contains invalid fields.
func (r *Report) Validate() error {
	if r.TargetURL == "" {
		return Errorf(EINVALID, "report target URL required")
	}
	if len(r.CompetitorURLs) == 0 {
		return Errorf(EINVALID, "report requires at least one competitor URL")
	}
	return nil
}

// ReportService represents a service for managing stored gap reports.
type ReportService interface {
	// CreateReport stores a report and its rows. The ID, content hash,
	// and creation time are assigned by the service.
	CreateReport(ctx context.Context, report *Report) error

	// FindReportByID retrieves a report with its rows.
	// Returns ENOTFOUND if the report does not exist.
	FindReportByID(ctx context.Context, id string) (*Report, error)

	// FindReports retrieves reports matching the filter, newest first.
	FindReports(ctx context.Context, filter ReportFilter) ([]*Report, error)

	// DeleteReport permanently removes a report and its rows.
	// Returns ENOTFOUND if the report does not exist.
	DeleteReport(ctx context.Context, id string) error
}

// ReportFilter represents a filter for FindReports.
type ReportFilter struct {
	ID        *string `json:"id"`
	TargetURL *string `json:"targetUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
