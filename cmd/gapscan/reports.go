package main

import (
	"fmt"

	"github.com/fwojciec/gapscan"
)

// Run executes the reports command.
func (c *ReportsCmd) Run(deps *Dependencies) error {
	filter := gapscan.ReportFilter{Limit: c.Limit}
	if c.Target != "" {
		filter.TargetURL = &c.Target
	}

	reports, err := deps.Reports.FindReports(deps.Ctx, filter)
	if err != nil {
		return err
	}

	if len(reports) == 0 {
		fmt.Fprintln(deps.Stdout, "No reports found.")
		return nil
	}

	for _, r := range reports {
		title := r.TargetTitle
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d competitor(s)\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), title, len(r.CompetitorURLs))
	}
	return nil
}
