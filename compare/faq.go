package compare

import (
	"fmt"
	"html"
	"strings"

	"github.com/fwojciec/gapscan"
)

// HasRealFAQ reports whether a page carries a genuine FAQ: an FAQPage
// schema, at least two container questions, or an FAQ-titled heading
// with at least two question-shaped children or two question marks in
// its body text. A bare FAQ title with nothing under it does not count.
func (a *Analyzer) HasRealFAQ(in Input) bool {
	markup := pageMarkup(in.Doc)
	if a.source != nil && markup != "" {
		if a.source.HasSchema(markup) {
			return true
		}
		if len(a.source.Questions(markup)) >= 2 {
			return true
		}
	}
	for _, fn := range gapscan.FAQHeadingNodes(a.lex, in.Nodes) {
		questions := 0
		for _, c := range fn.Children {
			if gapscan.LooksLikeQuestion(gapscan.CleanText(c.Header)) {
				questions++
			}
		}
		if questions >= 2 {
			return true
		}
		if strings.Count(fn.Content, "?") >= 2 {
			return true
		}
	}
	return false
}

// FAQQuestions returns every FAQ question found on a page, from markup
// signals and FAQ-titled heading sections, deduplicated by normalized
// form.
func (a *Analyzer) FAQQuestions(in Input) []string {
	var qs []string
	if a.source != nil {
		if markup := pageMarkup(in.Doc); markup != "" {
			qs = append(qs, a.source.Questions(markup)...)
		}
	}
	for _, fn := range gapscan.FAQHeadingNodes(a.lex, in.Nodes) {
		qs = append(qs, gapscan.QuestionsFromNode(fn)...)
	}

	seen := make(map[string]bool, len(qs))
	var out []string
	for _, q := range qs {
		k := gapscan.NormalizeHeader(q)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, q)
	}
	return out
}

// FAQPairs returns question/answer pairs from markup and heading trees,
// backfilling answerless questions, deduplicated with the longer
// answer kept.
func (a *Analyzer) FAQPairs(in Input) []gapscan.FAQPair {
	var pairs []gapscan.FAQPair
	if a.source != nil {
		if markup := pageMarkup(in.Doc); markup != "" {
			pairs = append(pairs, a.source.Pairs(markup)...)
		}
	}
	pairs = append(pairs, gapscan.PairsFromNodes(a.lex, in.Nodes)...)
	for _, q := range a.FAQQuestions(in) {
		pairs = append(pairs, gapscan.FAQPair{Question: gapscan.NormalizeQuestion(q)})
	}
	return gapscan.MergeFAQPairs(pairs)
}

// missingFAQRow builds the trailing FAQs gap row, or nil when the
// competitor has no real FAQ or every competitor question already has
// an equivalent on the target page.
func (a *Analyzer) missingFAQRow(target, comp Input) *gapscan.GapRow {
	if !a.HasRealFAQ(comp) {
		return nil
	}
	compPairs := validPairs(a.FAQPairs(comp))
	if len(compPairs) == 0 {
		return nil
	}

	var targetPairs []gapscan.FAQPair
	if a.HasRealFAQ(target) {
		targetPairs = validPairs(a.FAQPairs(target))
	}

	var missing []string
	seen := make(map[string]bool)
	for _, cp := range compPairs {
		q := gapscan.CleanText(cp.Question)
		if q == "" {
			continue
		}
		matched := false
		for _, tp := range targetPairs {
			if tp.Question == "" {
				continue
			}
			if a.faq.QuestionsEquivalent(q, tp.Question) {
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		k := gapscan.NormalizeHeader(gapscan.NormalizeQuestion(q))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		missing = append(missing, q)
	}
	if len(missing) == 0 {
		return nil
	}

	limit := a.th.MaxFAQItems
	shown := missing
	if len(shown) > limit {
		shown = shown[:limit]
	}
	var desc strings.Builder
	desc.WriteString(questionList(shown, "Important missing FAQ questions:"))
	if len(missing) > limit {
		fmt.Fprintf(&desc, "<div>+%d more FAQ gaps</div>", len(missing)-limit)
	}

	return &gapscan.GapRow{
		Header:      "FAQs",
		Description: desc.String(),
		Source:      SourceLink(comp.URL),
	}
}

// questionList renders questions as a numbered inline HTML block.
func questionList(items []string, label string) string {
	var cleaned []string
	for _, q := range items {
		if q = gapscan.CleanText(q); q != "" {
			cleaned = append(cleaned, q)
		}
	}
	if len(cleaned) == 0 {
		return ""
	}
	parts := make([]string, len(cleaned))
	for i, q := range cleaned {
		parts[i] = fmt.Sprintf("%d-%s", i+1, html.EscapeString(q))
	}
	body := "<div>" + strings.Join(parts, " ") + "</div>"
	if label != "" {
		return "<div>" + html.EscapeString(label) + "</div>" + body
	}
	return body
}

func validPairs(pairs []gapscan.FAQPair) []gapscan.FAQPair {
	var out []gapscan.FAQPair
	for _, p := range pairs {
		if gapscan.ValidFAQQuestion(gapscan.CleanText(p.Question)) {
			out = append(out, p)
		}
	}
	return out
}

func pageMarkup(doc *gapscan.Document) string {
	if doc == nil {
		return ""
	}
	return doc.RawMarkup
}
