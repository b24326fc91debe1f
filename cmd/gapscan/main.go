package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/gapscan"
	"github.com/fwojciec/gapscan/compare"
	"github.com/fwojciec/gapscan/goquery"
	gaphttp "github.com/fwojciec/gapscan/http"
	"github.com/fwojciec/gapscan/htmltomarkdown"
	"github.com/fwojciec/gapscan/readability"
	"github.com/fwojciec/gapscan/rod"
	gapslog "github.com/fwojciec/gapscan/slog"
	"github.com/fwojciec/gapscan/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ReportService gapscan.ReportService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("gapscan"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'gapscan --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set GAPSCAN_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.ReportService = sqlite.NewReportService(m.DB)
	deps.DB = m.DB
	deps.Reports = m.ReportService

	lex := gapscan.DefaultLexicon()
	th := gapscan.DefaultThresholds()
	deps.Strategies = []gapscan.TreeStrategy{
		goquery.NewTreeStrategy(lex),
		gapscan.NewMarkdownTreeStrategy(lex),
		gapscan.NewPlainTextTreeStrategy(lex),
	}
	deps.Analyzer = compare.NewAnalyzer(lex, th, goquery.NewFAQSource(lex))

	if cmd == "analyze" {
		logger := newLogger(stderr)

		extractor := readability.NewExtractor()
		deps.Extractor = extractor
		deps.Converter = htmltomarkdown.NewConverter()

		var opts []gaphttp.Option
		if cli.Analyze.Render {
			fetcher, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			opts = append(opts, gaphttp.WithJSFetcher(gapslog.NewLoggingFetcher(fetcher, logger)))
		}

		resolver := gapslog.NewLoggingResolver(gaphttp.NewResolver(extractor, opts...), logger)
		defer resolver.Close()
		deps.Resolver = resolver
	}

	return kongCtx.Run(deps)
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("GAPSCAN_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("GAPSCAN_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "gapscan.db"
	}
	dir := filepath.Join(home, ".gapscan")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "gapscan.db")
}
