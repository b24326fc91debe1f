package gapscan

import (
	"context"
	"strings"
)

// Document is the per-URL input record supplied by the fetch stage.
// The engine requires at minimum ExtractedText; RawMarkup enables the
// structured-markup tree strategy and richer FAQ extraction. Absent
// markup falls back to the text-only strategies.
type Document struct {
	// Success reports whether the fetch chain produced usable content.
	Success bool `json:"success"`

	// SourceLabel names the fetch strategy that won ("direct",
	// "rendered", "reader", "manual").
	SourceLabel string `json:"sourceLabel"`

	// StatusCode is the last HTTP status observed, 0 if none.
	StatusCode int `json:"statusCode,omitempty"`

	// RawMarkup is the page HTML when available.
	RawMarkup string `json:"rawMarkup"`

	// ExtractedText is the readable article text. For reader-mode
	// sources this is pseudo-markdown with #-prefixed headings.
	ExtractedText string `json:"extractedText"`

	// FailureReason explains an unsuccessful fetch.
	FailureReason string `json:"failureReason,omitempty"`
}

// Validate returns an error if the document cannot be analyzed.
func (d *Document) Validate() error {
	if !d.Success {
		return Errorf(EUNAVAILABLE, "document fetch failed: %s", d.FailureReason)
	}
	if d.ExtractedText == "" && d.RawMarkup == "" {
		return Errorf(EINVALID, "document has no content")
	}
	return nil
}

var blockedMarkers = []string{
	"just a moment", "checking your browser", "verify you are human",
	"cloudflare", "access denied", "captcha", "forbidden", "service unavailable",
}

// LooksBlocked reports whether fetched text reads like a bot challenge
// or an access denial page rather than article content.
func LooksBlocked(text string) bool {
	t := strings.ToLower(text)
	for _, marker := range blockedMarkers {
		if strings.Contains(t, marker) {
			return true
		}
	}
	return false
}

// Resolver turns a URL into a Document, hiding the fetch fallback chain
// (direct HTTP, JS rendering, reader-mode proxies) from the engine.
type Resolver interface {
	// Resolve fetches the URL and returns the best available document.
	// A blocked or empty page yields a Document with Success=false and
	// a FailureReason rather than an error; errors are reserved for
	// invalid input and context cancellation.
	Resolve(ctx context.Context, url string) (*Document, error)

	// Close releases any resources held by the resolver.
	Close() error
}

// Fetcher retrieves HTML from URLs. Implementations may use browser
// automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch returns the page HTML. The context controls timeout and
	// cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	Close() error
}

// ExtractResult holds the readable content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML with boilerplate
	// (nav, footer, sidebar, ads) removed.
	ContentHTML string

	// Text is the readable article text.
	Text string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms clean content HTML into Markdown.
	Convert(html string) (string, error)
}

// FAQSource extracts FAQ material from raw markup. Implementations hide
// the markup-level heuristics (embedded schema data, FAQ-shaped
// containers) from the engine.
type FAQSource interface {
	// HasSchema reports whether the markup carries structured FAQ
	// metadata (e.g., an FAQPage JSON-LD block).
	HasSchema(markup string) bool

	// Questions returns deduplicated question strings found in the
	// markup.
	Questions(markup string) []string

	// Pairs returns question/answer pairs found in the markup,
	// deduplicated by normalized question with the longer answer kept.
	Pairs(markup string) []FAQPair
}
