package gapscan

import (
	"regexp"
	"strings"
)

// Section is a flattened projection of one qualifying heading: levels
// 2-4, with FAQ sections, question-shaped headings, and noise headings
// excluded. ParentH2 is a weak back-reference by header text; sections
// are deduplicated by normalized header per document scope, so the
// reference is unambiguous within one projection.
type Section struct {
	Level    int    `json:"level"`
	Header   string `json:"header"`
	Content  string `json:"content"`
	ParentH2 string `json:"parentH2,omitempty"`
}

// SectionNodes derives the Section projection from a forest for the
// given levels. It is recomputed per comparison pass and read-only.
//
// Parent tracking is kept accurate across FAQ sections so questions do
// not leak under the previous non-FAQ H2 (e.g., "Conclusion").
func SectionNodes(lex *Lexicon, nodes []*HeadingNode, levels ...int) []Section {
	if len(levels) == 0 {
		levels = []int{2, 3}
	}
	want := make(map[int]bool, len(levels))
	for _, l := range levels {
		want[l] = true
	}

	var secs []Section
	currentH2 := ""
	currentH2IsFAQ := false

	for _, x := range Flatten(nodes) {
		h := stripLabel(x.Header)

		if x.Level == 2 {
			switch {
			case h == "" || lex.IsNoiseHeader(h):
				currentH2 = ""
				currentH2IsFAQ = false
			case lex.IsFAQHeader(h):
				currentH2 = ""
				currentH2IsFAQ = true
			default:
				currentH2 = h
				currentH2IsFAQ = false
			}
		}

		// FAQ descendants and question headings are FAQ material, not
		// structural subtopics.
		if x.Level >= 3 && currentH2IsFAQ {
			continue
		}
		if x.Level >= 3 && LooksLikeQuestion(h) {
			continue
		}

		if h == "" || lex.IsNoiseHeader(h) || lex.IsFAQHeader(h) {
			continue
		}
		if want[x.Level] {
			secs = append(secs, Section{
				Level:    x.Level,
				Header:   h,
				Content:  CleanText(x.Content),
				ParentH2: currentH2,
			})
		}
	}

	seen := make(map[string]bool, len(secs))
	out := secs[:0]
	for _, s := range secs {
		k := NormalizeHeader(s.Header)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, s)
	}
	return out
}

// CoverageCorpus concatenates a document's extracted text with every
// heading and body text of its forest into one cleaned string, used as
// the last-resort coverage check. Rebuilt per analysis run.
func CoverageCorpus(doc *Document, nodes []*HeadingNode) string {
	var parts []string
	if doc != nil && doc.ExtractedText != "" {
		parts = append(parts, doc.ExtractedText)
	}
	for _, x := range Flatten(nodes) {
		if h := CleanText(x.Header); h != "" {
			parts = append(parts, h)
		}
		if c := CleanText(x.Content); c != "" {
			parts = append(parts, c)
		}
	}
	return CleanText(strings.Join(parts, " "))
}

var trailingLabelRe = regexp.MustCompile(`\s*:\s*$`)

func stripLabel(h string) string {
	return CleanText(trailingLabelRe.ReplaceAllString(CleanText(h), ""))
}
