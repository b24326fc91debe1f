package main

import (
	"context"
	"io"

	"github.com/fwojciec/gapscan"
	"github.com/fwojciec/gapscan/compare"
	"github.com/fwojciec/gapscan/sqlite"
)

// Dependencies holds all services and configuration for command
// execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	DB         *sqlite.DB
	Reports    gapscan.ReportService
	Resolver   gapscan.Resolver
	Analyzer   *compare.Analyzer
	Extractor  gapscan.Extractor
	Converter  gapscan.Converter
	Strategies []gapscan.TreeStrategy
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Analyze AnalyzeCmd `cmd:"" help:"Compare a target article against competitor articles"`
	Reports ReportsCmd `cmd:"" help:"List stored gap reports"`
	Show    ShowCmd    `cmd:"" help:"Show a stored gap report"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a stored gap report"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	Target      string   `arg:"" help:"Target article URL"`
	Competitors []string `arg:"" help:"Competitor article URLs"`
	TargetFile  string   `short:"t" help:"Read target content from a file instead of fetching"`
	Render      bool     `short:"r" help:"Enable JS rendering via headless Chrome"`
	NoSave      bool     `help:"Print the report without storing it"`
}

// ReportsCmd is the "reports" subcommand.
type ReportsCmd struct {
	Target string `short:"u" help:"Filter by target URL"`
	Limit  int    `short:"n" default:"20" help:"Maximum reports to list"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Report ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Report ID"`
	Force bool   `help:"Confirm deletion"`
}
