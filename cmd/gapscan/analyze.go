package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/gapscan"
	"github.com/fwojciec/gapscan/compare"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	target, err := c.resolveTarget(deps)
	if err != nil {
		return err
	}

	targetNodes, strategy, err := gapscan.BuildForest(target.Doc, deps.Strategies...)
	if err != nil {
		if gapscan.ErrorCode(err) == gapscan.ENOSTRUCTURE {
			return fmt.Errorf("no heading structure found in target %s; try --target-file with clean article HTML", c.Target)
		}
		return err
	}
	target.Nodes = targetNodes
	fmt.Fprintf(deps.Stderr, "Target parsed via %s strategy (%d sections)\n", strategy, len(gapscan.Flatten(targetNodes)))

	comps, err := c.resolveCompetitors(deps)
	if err != nil {
		return err
	}
	if len(comps) == 0 {
		return fmt.Errorf("no competitor produced usable content")
	}

	rows, err := deps.Analyzer.AnalyzeAll(deps.Ctx, target, comps)
	if err != nil {
		return err
	}

	printRows(deps, rows)

	if c.NoSave || deps.Reports == nil {
		return nil
	}
	report := &gapscan.Report{
		TargetURL:   c.Target,
		TargetTitle: gapscan.FirstH1(targetNodes),
		Rows:        rows,
	}
	for _, comp := range comps {
		report.CompetitorURLs = append(report.CompetitorURLs, comp.URL)
	}
	if err := deps.Reports.CreateReport(deps.Ctx, report); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "\nSaved report %s\n", report.ID)
	return nil
}

// resolveTarget produces the target input, either from a local file or
// by fetching the target URL.
func (c *AnalyzeCmd) resolveTarget(deps *Dependencies) (compare.Input, error) {
	if c.TargetFile != "" {
		content, err := os.ReadFile(c.TargetFile)
		if err != nil {
			return compare.Input{}, err
		}
		doc := &gapscan.Document{
			Success:     true,
			SourceLabel: "manual",
			RawMarkup:   string(content),
		}
		c.enrichDocument(deps, doc)
		if doc.ExtractedText == "" {
			doc.ExtractedText = gapscan.CleanText(string(content))
		}
		return compare.Input{Doc: doc, URL: c.Target}, nil
	}

	doc, err := deps.Resolver.Resolve(deps.Ctx, c.Target)
	if err != nil {
		return compare.Input{}, err
	}
	if !doc.Success {
		return compare.Input{}, fmt.Errorf("failed to fetch target %s (%s); provide the article via --target-file", c.Target, doc.FailureReason)
	}
	c.enrichDocument(deps, doc)
	return compare.Input{Doc: doc, URL: c.Target}, nil
}

// resolveCompetitors fetches each competitor and builds its heading
// forest. Failed fetches and structureless pages are skipped with a
// warning so one bad competitor does not sink the whole run.
func (c *AnalyzeCmd) resolveCompetitors(deps *Dependencies) ([]compare.Input, error) {
	var comps []compare.Input
	for _, url := range c.Competitors {
		doc, err := deps.Resolver.Resolve(deps.Ctx, url)
		if err != nil {
			return nil, err
		}
		if !doc.Success {
			fmt.Fprintf(deps.Stderr, "Skipping %s: %s\n", url, doc.FailureReason)
			continue
		}
		c.enrichDocument(deps, doc)
		nodes, _, err := gapscan.BuildForest(doc, deps.Strategies...)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "Skipping %s: no heading structure\n", url)
			continue
		}
		comps = append(comps, compare.Input{Doc: doc, Nodes: nodes, URL: url})
	}
	return comps, nil
}

// enrichDocument upgrades a document's text to Markdown derived from
// the extracted content HTML. Markdown keeps the heading structure that
// plain text extraction loses, which gives the markdown tree strategy
// something to work with when markup parsing comes up empty.
func (c *AnalyzeCmd) enrichDocument(deps *Dependencies, doc *gapscan.Document) {
	if doc.RawMarkup == "" || deps.Extractor == nil || deps.Converter == nil {
		return
	}
	res, err := deps.Extractor.Extract(doc.RawMarkup)
	if err != nil || res.ContentHTML == "" {
		return
	}
	md, err := deps.Converter.Convert(res.ContentHTML)
	if err != nil {
		return
	}
	md = strings.TrimSpace(md)
	if len(md) >= len(doc.ExtractedText) {
		doc.ExtractedText = md
	}
}

func printRows(deps *Dependencies, rows []gapscan.GapRow) {
	if len(rows) == 0 {
		fmt.Fprintln(deps.Stdout, "No content gaps found.")
		return
	}
	fmt.Fprintf(deps.Stdout, "Found %d content gap(s):\n", len(rows))
	for i, row := range rows {
		fmt.Fprintf(deps.Stdout, "\n%d. %s\n", i+1, row.Header)
		fmt.Fprintf(deps.Stdout, "   %s\n", stripMarkup(row.Description))
		fmt.Fprintf(deps.Stdout, "   Source: %s\n", stripMarkup(row.Source))
	}
}
