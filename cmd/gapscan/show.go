package main

import (
	"fmt"
	"regexp"
	"strings"
)

var tagRe = regexp.MustCompile(`<[^>]+>`)

// stripMarkup drops HTML tags from a description for terminal output
// and collapses the resulting whitespace.
func stripMarkup(s string) string {
	return strings.Join(strings.Fields(tagRe.ReplaceAllString(s, " ")), " ")
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	report, err := deps.Reports.FindReportByID(deps.Ctx, c.ID)
	if err != nil {
		return err
	}

	title := report.TargetTitle
	if title == "" {
		title = report.TargetURL
	}
	fmt.Fprintf(deps.Stdout, "Report %s\n", report.ID)
	fmt.Fprintf(deps.Stdout, "Target: %s (%s)\n", title, report.TargetURL)
	fmt.Fprintf(deps.Stdout, "Created: %s\n", report.CreatedAt.Format("2006-01-02 15:04"))
	for _, url := range report.CompetitorURLs {
		fmt.Fprintf(deps.Stdout, "Competitor: %s\n", url)
	}

	printRows(deps, report.Rows)
	return nil
}
