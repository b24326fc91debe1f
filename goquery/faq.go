package goquery

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/gapscan"
)

// Ensure FAQSource implements gapscan.FAQSource at compile time.
var _ gapscan.FAQSource = (*FAQSource)(nil)

// FAQSource extracts FAQ material from raw markup using two signal
// sources: embedded JSON-LD FAQPage schema and FAQ-shaped containers
// (elements whose id/class mentions faq, accordion, or questions, plus
// the parents of FAQ-titled headings).
type FAQSource struct {
	lex *gapscan.Lexicon
}

// NewFAQSource returns an FAQSource using the given lexicon for FAQ
// title recognition.
func NewFAQSource(lex *gapscan.Lexicon) *FAQSource {
	return &FAQSource{lex: lex}
}

var (
	ldJSONRe       = regexp.MustCompile(`(?i)ld\+json`)
	faqContainerRe = regexp.MustCompile(`\bfaqs?\b|\baccordion\b|\bquestions\b`)
)

// HasSchema reports whether the markup carries an FAQPage JSON-LD
// block. Malformed script contents are skipped, not fatal.
func (f *FAQSource) HasSchema(markup string) bool {
	found := false
	f.eachSchema(markup, func(v any) {
		if schemaHasType(v, "faqpage") {
			found = true
		}
	})
	return found
}

// Questions returns deduplicated question strings found in the markup:
// schema questions first, then question-shaped text inside FAQ-like
// containers.
func (f *FAQSource) Questions(markup string) []string {
	var qs []string
	for _, p := range f.schemaPairs(markup) {
		qs = append(qs, p.Question)
	}

	gq, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err == nil {
		gq.Find(ignoreSelector).Remove()
		for _, c := range f.faqContainers(gq) {
			c.Find("summary, button, h3, h4, h5, strong, p, li, dt").Each(func(_ int, el *goquery.Selection) {
				txt := gapscan.CleanText(el.Text())
				if txt == "" || len(txt) < 6 || len(txt) > 180 {
					return
				}
				if gapscan.LooksLikeQuestion(txt) {
					qs = append(qs, gapscan.NormalizeQuestion(txt))
				}
			})
		}
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

// Pairs returns question/answer pairs from both signal sources,
// deduplicated by normalized question with the longer answer kept. In
// the container scan, the first nearby non-question block after a
// question acts as its answer.
func (f *FAQSource) Pairs(markup string) []gapscan.FAQPair {
	pairs := f.schemaPairs(markup)

	gq, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err == nil {
		gq.Find(ignoreSelector).Remove()
		for _, c := range f.faqContainers(gq) {
			pendingIdx := -1
			c.Find("summary, button, h3, h4, h5, strong, p, li, dt, dd").Each(func(_ int, el *goquery.Selection) {
				txt := gapscan.CleanText(el.Text())
				if txt == "" || len(txt) < 6 || len(txt) > 320 {
					return
				}
				if gapscan.LooksLikeQuestion(txt) {
					if qn := gapscan.NormalizeQuestion(txt); qn != "" {
						pairs = append(pairs, gapscan.FAQPair{Question: qn})
						pendingIdx = len(pairs) - 1
					}
					return
				}
				if pendingIdx >= 0 && pendingIdx < len(pairs) && pairs[pendingIdx].Answer == "" {
					pairs[pendingIdx].Answer = txt
				}
			})
		}
	}

	return gapscan.MergeFAQPairs(pairs)
}

// faqContainers returns up to ten candidate FAQ containers.
func (f *FAQSource) faqContainers(gq *goquery.Document) []*goquery.Selection {
	var out []*goquery.Selection
	gq.Find("[id], [class]").Each(func(_ int, sel *goquery.Selection) {
		id, _ := sel.Attr("id")
		class, _ := sel.Attr("class")
		if faqContainerRe.MatchString(strings.ToLower(id + " " + class)) {
			out = append(out, sel)
		}
	})
	gq.Find("h1, h2, h3, h4").Each(func(_ int, sel *goquery.Selection) {
		if f.lex.IsFAQHeader(sel.Text()) {
			parent := sel.Parent()
			if parent.Length() == 0 {
				parent = sel
			}
			out = append(out, parent)
		}
	})
	if len(out) > 10 {
		out = out[:10]
	}
	return out
}

// schemaPairs extracts question/answer pairs from JSON-LD blocks.
func (f *FAQSource) schemaPairs(markup string) []gapscan.FAQPair {
	var pairs []gapscan.FAQPair
	f.eachSchema(markup, func(v any) {
		walkSchema(v, func(obj map[string]any) {
			if !nodeIsQuestion(obj) {
				return
			}
			q := stringField(obj, "name")
			if q == "" {
				q = stringField(obj, "text")
			}
			if q == "" {
				return
			}
			qn := gapscan.NormalizeQuestion(q)
			if qn == "" || len(qn) < 6 || len(qn) > 180 {
				return
			}
			pairs = append(pairs, gapscan.FAQPair{Question: qn, Answer: schemaAnswer(obj)})
		})
	})
	return gapscan.MergeFAQPairs(pairs)
}

// eachSchema decodes every parseable ld+json script in the markup.
// Unparseable blocks are skipped per item so one bad block never aborts
// extraction.
func (f *FAQSource) eachSchema(markup string, fn func(v any)) {
	if markup == "" {
		return
	}
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return
	}
	gq.Find("script[type]").Each(func(_ int, sel *goquery.Selection) {
		typ, _ := sel.Attr("type")
		if !ldJSONRe.MatchString(typ) {
			return
		}
		raw := strings.TrimSpace(sel.Text())
		if raw == "" {
			return
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return
		}
		fn(v)
	})
}

func walkSchema(v any, fn func(obj map[string]any)) {
	switch x := v.(type) {
	case map[string]any:
		fn(x)
		for _, child := range x {
			walkSchema(child, fn)
		}
	case []any:
		for _, child := range x {
			walkSchema(child, fn)
		}
	}
}

func schemaTypes(obj map[string]any) []string {
	t := obj["@type"]
	if t == nil {
		t = obj["type"]
	}
	switch x := t.(type) {
	case string:
		return []string{strings.ToLower(x)}
	case []any:
		out := make([]string, 0, len(x))
		for _, v := range x {
			if s, ok := v.(string); ok {
				out = append(out, strings.ToLower(s))
			}
		}
		return out
	}
	return nil
}

func schemaHasType(v any, want string) bool {
	found := false
	walkSchema(v, func(obj map[string]any) {
		for _, t := range schemaTypes(obj) {
			if t == want {
				found = true
			}
		}
	})
	return found
}

func nodeIsQuestion(obj map[string]any) bool {
	for _, t := range schemaTypes(obj) {
		if t == "question" || strings.HasSuffix(t, "question") {
			return true
		}
	}
	return false
}

func stringField(obj map[string]any, key string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return ""
}

var tagStripRe = regexp.MustCompile(`<[^>]+>`)

func schemaAnswer(obj map[string]any) string {
	ans := obj["acceptedAnswer"]
	if ans == nil {
		ans = obj["answer"]
	}
	switch x := ans.(type) {
	case map[string]any:
		a := stringField(x, "text")
		if a == "" {
			a = stringField(x, "name")
		}
		return gapscan.CleanText(tagStripRe.ReplaceAllString(a, " "))
	case string:
		return gapscan.CleanText(tagStripRe.ReplaceAllString(x, " "))
	}
	return ""
}
