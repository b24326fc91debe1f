package gapscan

import (
	"regexp"
	"strings"
	"unicode"
)

// TreeStrategy converts one document shape into a heading forest.
// Strategies are tried in priority order; a strategy that cannot find
// structure returns ok=false and the next one runs.
type TreeStrategy interface {
	// Name identifies the strategy ("markup", "markdown", "plaintext").
	Name() string

	// Build returns the heading forest for the document, or ok=false
	// when the strategy found no headings.
	Build(doc *Document) (nodes []*HeadingNode, ok bool)
}

// BuildForest tries the strategies in order and returns the first
// non-empty forest. When every strategy fails it returns an
// ENOSTRUCTURE error: the caller must supply a manual substitute
// document before comparison can proceed.
func BuildForest(doc *Document, strategies ...TreeStrategy) ([]*HeadingNode, string, error) {
	if doc == nil {
		return nil, "", Errorf(EINVALID, "document required")
	}
	for _, s := range strategies {
		if nodes, ok := s.Build(doc); ok && len(nodes) > 0 {
			return nodes, s.Name(), nil
		}
	}
	return nil, "", Errorf(ENOSTRUCTURE, "no heading structure extractable from document")
}

var mdHeadingRe = regexp.MustCompile(`^(#{1,4})\s+(.*)$`)

// MarkdownTreeStrategy builds a forest from reader-mode pseudo-markdown:
// heading level is the leading '#' count, non-heading lines accumulate
// onto the current node's content.
type MarkdownTreeStrategy struct {
	lex *Lexicon
}

// NewMarkdownTreeStrategy returns a strategy using the given lexicon
// for noise-header rejection.
func NewMarkdownTreeStrategy(lex *Lexicon) *MarkdownTreeStrategy {
	return &MarkdownTreeStrategy{lex: lex}
}

// Name implements TreeStrategy.
func (s *MarkdownTreeStrategy) Name() string { return "markdown" }

// Build implements TreeStrategy.
func (s *MarkdownTreeStrategy) Build(doc *Document) ([]*HeadingNode, bool) {
	b := &treeBuilder{}
	var current *HeadingNode

	for _, line := range strings.Split(doc.ExtractedText, "\n") {
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}

		if m := mdHeadingRe.FindStringSubmatch(t); m != nil {
			header := CleanText(m[2])
			if s.lex.IsNoiseHeader(header) {
				current = nil
				continue
			}
			node := &HeadingNode{Level: len(m[1]), Header: header}
			b.add(node)
			current = node
			continue
		}

		if current != nil {
			current.Content += " " + t
		}
	}

	var walk func(n *HeadingNode)
	walk = func(n *HeadingNode) {
		n.Content = CleanText(n.Content)
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, n := range b.roots {
		walk(n)
	}

	return b.roots, len(b.roots) > 0
}

// PlainTextTreeStrategy is the fallback when no explicit heading
// markers exist. A line counts as a heading when it is short, does not
// end in a sentence terminator, has 2-12 words, and is mostly
// capitalized. All detected headings are level 2 (flat structure); an
// implicit "Overview" heading is synthesized for body text preceding
// the first heading.
type PlainTextTreeStrategy struct {
	lex *Lexicon
}

// NewPlainTextTreeStrategy returns a strategy using the given lexicon
// for noise-header rejection.
func NewPlainTextTreeStrategy(lex *Lexicon) *PlainTextTreeStrategy {
	return &PlainTextTreeStrategy{lex: lex}
}

// Name implements TreeStrategy.
func (s *PlainTextTreeStrategy) Name() string { return "plaintext" }

// Build implements TreeStrategy.
func (s *PlainTextTreeStrategy) Build(doc *Document) ([]*HeadingNode, bool) {
	raw := strings.ReplaceAll(doc.ExtractedText, "\r", "")

	var nodes []*HeadingNode
	var current *HeadingNode

	for _, line := range strings.Split(raw, "\n") {
		l := CleanText(line)
		if l == "" {
			continue
		}
		if s.looksLikeHeading(l) {
			current = &HeadingNode{Level: 2, Header: l}
			nodes = append(nodes, current)
			continue
		}
		if current == nil {
			current = &HeadingNode{Level: 2, Header: "Overview"}
			nodes = append(nodes, current)
		}
		current.Content = CleanText(current.Content + " " + l)
	}

	return nodes, len(nodes) > 0
}

func (s *PlainTextTreeStrategy) looksLikeHeading(line string) bool {
	if len(line) < 5 || len(line) > 80 {
		return false
	}
	if strings.HasSuffix(line, ".") {
		return false
	}
	if s.lex.IsNoiseHeader(line) {
		return false
	}
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 12 {
		return false
	}

	capWords := 0
	for _, w := range words {
		r := []rune(w)
		if len(r) > 0 && unicode.IsUpper(r[0]) {
			capWords++
		}
	}

	letters, uppers := 0, 0
	for _, r := range line {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				uppers++
			}
		}
	}

	capsRatio := float64(capWords) / float64(len(words))
	allcapsRatio := 0.0
	if letters > 0 {
		allcapsRatio = float64(uppers) / float64(letters)
	}
	return capsRatio >= 0.6 || allcapsRatio >= 0.5
}
