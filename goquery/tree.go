// Package goquery provides the structured-markup implementations of the
// gapscan tree strategy and FAQ source, built on PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/gapscan"
)

// ignoreSelector removes chrome elements before any content scan.
const ignoreSelector = "nav, footer, header, aside, script, style, noscript"

// Ensure TreeStrategy implements gapscan.TreeStrategy at compile time.
var _ gapscan.TreeStrategy = (*TreeStrategy)(nil)

// TreeStrategy builds a heading forest from raw HTML markup. Headings
// h1-h4 are scanned in document order, noise headers skipped, and each
// heading's content is the paragraph/list-item text appearing after it
// up to the next heading.
type TreeStrategy struct {
	lex *gapscan.Lexicon
}

// NewTreeStrategy returns a strategy using the given lexicon for
// noise-header rejection.
func NewTreeStrategy(lex *gapscan.Lexicon) *TreeStrategy {
	return &TreeStrategy{lex: lex}
}

// Name implements gapscan.TreeStrategy.
func (s *TreeStrategy) Name() string { return "markup" }

// Build implements gapscan.TreeStrategy. It returns ok=false when the
// document has no raw markup or the markup yields no headings. Manually
// pasted documents whose text is actually HTML are parsed as markup.
func (s *TreeStrategy) Build(doc *gapscan.Document) ([]*gapscan.HeadingNode, bool) {
	markup := doc.RawMarkup
	if markup == "" && doc.SourceLabel == "manual" && looksLikeHTML(doc.ExtractedText) {
		markup = doc.ExtractedText
	}
	if markup == "" {
		return nil, false
	}

	gq, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, false
	}
	gq.Find(ignoreSelector).Remove()

	root := gq.Selection
	if article := gq.Find("article"); article.Length() > 0 {
		root = article.First()
	}

	nodes := s.buildForest(root)
	return nodes, len(nodes) > 0
}

// buildForest makes one document-order pass over headings, paragraphs,
// and list items. Headings drive a level stack; paragraph and list text
// accumulates onto the heading that precedes it. A skipped noise
// heading still terminates the previous heading's content run.
func (s *TreeStrategy) buildForest(root *goquery.Selection) []*gapscan.HeadingNode {
	var roots, stack []*gapscan.HeadingNode
	var current *gapscan.HeadingNode
	var parts []string

	flush := func() {
		if current != nil {
			current.Content = gapscan.CleanText(strings.Join(parts, " "))
		}
		parts = nil
	}

	root.Find("h1, h2, h3, h4, p, li").Each(func(_ int, sel *goquery.Selection) {
		name := goquery.NodeName(sel)
		if lvl := headingLevel(name); lvl <= 4 {
			flush()
			current = nil

			header := gapscan.CleanText(sel.Text())
			if header == "" || len(header) < 3 {
				return
			}
			if s.lex.IsNoiseHeader(header) {
				return
			}

			for len(stack) > 0 && stack[len(stack)-1].Level >= lvl {
				stack = stack[:len(stack)-1]
			}
			node := &gapscan.HeadingNode{Level: lvl, Header: header}
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				top.Children = append(top.Children, node)
			} else {
				roots = append(roots, node)
			}
			stack = append(stack, node)
			current = node
			return
		}

		if current == nil {
			return
		}
		// Skip list items that contain block children; their nested
		// paragraphs are visited separately.
		if name == "li" && sel.ChildrenFiltered("p, ul, ol").Length() > 0 {
			return
		}
		if txt := gapscan.CleanText(sel.Text()); txt != "" {
			parts = append(parts, txt)
		}
	})
	flush()

	return roots
}

func headingLevel(name string) int {
	if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
		return int(name[1] - '0')
	}
	return 9
}

func looksLikeHTML(s string) bool {
	low := strings.ToLower(s)
	return strings.Contains(low, "<html") || strings.Contains(low, "<article") ||
		strings.Contains(low, "<h1") || strings.Contains(low, "<h2")
}
