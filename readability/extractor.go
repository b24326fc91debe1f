package readability

import (
	"strings"

	"github.com/fwojciec/gapscan"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements gapscan.Extractor at compile time.
var _ gapscan.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main article content from
// HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*gapscan.ExtractResult, error) {
	if rawHTML == "" {
		return nil, gapscan.Errorf(gapscan.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &gapscan.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
		Text:        gapscan.CleanText(article.TextContent),
	}, nil
}
