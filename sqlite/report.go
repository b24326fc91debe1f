package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/gapscan"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ gapscan.ReportService = (*ReportService)(nil)

// ReportService implements gapscan.ReportService using SQLite.
type ReportService struct {
	db *DB
}

// NewReportService creates a new ReportService.
func NewReportService(db *DB) *ReportService {
	return &ReportService{db: db}
}

// hashRows computes xxHash over the row contents and returns a hex
// string. Used to detect re-runs that produced identical results.
func hashRows(rows []gapscan.GapRow) string {
	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString(r.Header)
		sb.WriteByte('\x1f')
		sb.WriteString(r.Description)
		sb.WriteByte('\x1f')
		sb.WriteString(r.Source)
		sb.WriteByte('\x1e')
	}
	h := xxhash.Sum64String(sb.String())
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// CreateReport stores a report and its rows.
func (s *ReportService) CreateReport(ctx context.Context, report *gapscan.Report) error {
	if err := report.Validate(); err != nil {
		return err
	}

	report.ID = uuid.New().String()
	report.CreatedAt = time.Now().UTC()
	report.ContentHash = hashRows(report.Rows)

	urls, err := json.Marshal(report.CompetitorURLs)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports (id, target_url, target_title, competitor_urls, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, report.ID, report.TargetURL, report.TargetTitle, string(urls), report.ContentHash,
		report.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	for i, row := range report.Rows {
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO gap_rows (report_id, position, header, description, source)
			VALUES (?, ?, ?, ?, ?)
		`, report.ID, i, row.Header, row.Description, row.Source)
		if err != nil {
			return err
		}
	}
	return nil
}

// FindReportByID retrieves a report with its rows.
func (s *ReportService) FindReportByID(ctx context.Context, id string) (*gapscan.Report, error) {
	var report gapscan.Report
	var urls, createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, target_url, target_title, competitor_urls, content_hash, created_at
		FROM reports
		WHERE id = ?
	`, id).Scan(&report.ID, &report.TargetURL, &report.TargetTitle, &urls, &report.ContentHash, &createdAt)

	if err == sql.ErrNoRows {
		return nil, gapscan.Errorf(gapscan.ENOTFOUND, "report not found")
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(urls), &report.CompetitorURLs); err != nil {
		return nil, fmt.Errorf("failed to parse competitor_urls: %w", err)
	}
	report.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT header, description, source
		FROM gap_rows
		WHERE report_id = ?
		ORDER BY position ASC
	`, report.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var r gapscan.GapRow
		if err := rows.Scan(&r.Header, &r.Description, &r.Source); err != nil {
			return nil, err
		}
		report.Rows = append(report.Rows, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &report, nil
}

// FindReports retrieves reports matching the filter, newest first.
// Row sets are not loaded; use FindReportByID for a full report.
func (s *ReportService) FindReports(ctx context.Context, filter gapscan.ReportFilter) ([]*gapscan.Report, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, target_url, target_title, competitor_urls, content_hash, created_at FROM reports WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.TargetURL != nil {
		query.WriteString(" AND target_url = ?")
		args = append(args, *filter.TargetURL)
	}

	query.WriteString(" ORDER BY created_at DESC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*gapscan.Report
	for rows.Next() {
		var report gapscan.Report
		var urls, createdAt string

		if err := rows.Scan(&report.ID, &report.TargetURL, &report.TargetTitle, &urls,
			&report.ContentHash, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(urls), &report.CompetitorURLs); err != nil {
			return nil, fmt.Errorf("failed to parse competitor_urls: %w", err)
		}
		report.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		reports = append(reports, &report)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reports, nil
}

// DeleteReport permanently removes a report and its rows.
func (s *ReportService) DeleteReport(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return gapscan.Errorf(gapscan.ENOTFOUND, "report not found")
	}
	return nil
}
