// Package compare assembles content gap reports. It walks a
// competitor's section tree header-first against the target's sections
// and emits one gap row per missing or under-covered topic, with an
// FAQ gap row appended last.
package compare

import (
	"context"

	"github.com/fwojciec/gapscan"
	"golang.org/x/sync/errgroup"
)

// Input bundles a resolved document with its heading forest and the
// URL it came from.
type Input struct {
	Doc   *gapscan.Document
	Nodes []*gapscan.HeadingNode
	URL   string
}

// Analyzer produces gap rows for one target article against one or
// more competitor articles.
type Analyzer struct {
	lex     *gapscan.Lexicon
	th      gapscan.Thresholds
	matcher *gapscan.Matcher
	scorer  *gapscan.Scorer
	faq     *gapscan.FAQMatcher
	source  gapscan.FAQSource
}

// NewAnalyzer returns an Analyzer. The FAQ source extracts schema and
// container FAQ material from raw markup; pass nil to restrict FAQ
// extraction to heading trees.
func NewAnalyzer(lex *gapscan.Lexicon, th gapscan.Thresholds, source gapscan.FAQSource) *Analyzer {
	matcher := gapscan.NewMatcher(lex, th)
	return &Analyzer{
		lex:     lex,
		th:      th,
		matcher: matcher,
		scorer:  gapscan.NewScorer(lex, matcher),
		faq:     gapscan.NewFAQMatcher(lex, matcher),
		source:  source,
	}
}

// Rows compares one competitor against the target and returns
// deduplicated gap rows in discovery order. The FAQ row, when present,
// is always last.
func (a *Analyzer) Rows(target, comp Input) []gapscan.GapRow {
	b := newRowBuilder(SourceLink(comp.URL))

	targetSecs := gapscan.SectionNodes(a.lex, target.Nodes, 2, 3, 4)
	compSecs := gapscan.SectionNodes(a.lex, comp.Nodes, 2, 3, 4)

	targetH2 := filterLevel(targetSecs, func(lvl int) bool { return lvl == 2 })
	targetChildren := filterLevel(targetSecs, func(lvl int) bool { return lvl >= 3 })
	compH2 := filterLevel(compSecs, func(lvl int) bool { return lvl == 2 })
	compChildren := filterLevel(compSecs, func(lvl int) bool { return lvl >= 3 })

	targetByParent := childrenByParent(targetChildren)
	compByParent := childrenByParent(compChildren)
	targetCorpus := gapscan.CoverageCorpus(target.Doc, target.Nodes)

	for _, cs := range compH2 {
		header := cs.Header
		if header == "" || a.lex.IsFAQHeader(header) || gapscan.LooksLikeQuestion(header) {
			continue
		}
		children := a.informativeChildHeaders(compByParent, header)
		text := combinedContent(a.lex, header, compH2, compByParent)
		if text == "" {
			text = cs.Content
		}

		m := a.matcher.FindBestMatch(header, targetH2, a.th.HeaderMatchMinScore)
		if m == nil {
			if a.th.HighPrecision && a.scorer.TopicIsCovered(
				header,
				append(append([]gapscan.Section{}, targetH2...), targetChildren...),
				targetCorpus,
				a.th.HeaderMatchMinScore,
				a.th.MinHeaderTextCoverage,
			) {
				continue
			}
			b.add(header, []string{a.summarizeMissingSection(header, children, text)})
			continue
		}

		targetHeader := m.Section.Header
		targetChildHeaders := a.informativeChildHeaders(targetByParent, targetHeader)
		targetText := combinedContent(a.lex, targetHeader, targetH2, targetByParent)

		missing := a.missingContentPoints(header, text, targetText, targetCorpus, children, targetChildHeaders, a.th.MaxContentGapItems)

		var parts []string
		if len(missing) > 0 {
			if list := a.lex.FormatGapList(missing, a.th.MaxContentGapItems); list != "" {
				parts = append(parts, "Important missing points: "+list+".")
			}
		} else if note := a.depthGapSummary(text, targetText); note != "" {
			parts = append(parts, note)
		}

		if len(parts) > 0 {
			rowHeader := targetHeader
			if rowHeader == "" {
				rowHeader = header
			}
			b.add(rowHeader, parts)
		}
	}

	// Orphan subtopics: competitor level>=3 sections whose parent H2
	// never made it into the section list.
	compH2Norms := make(map[string]bool, len(compH2))
	for _, s := range compH2 {
		compH2Norms[gapscan.NormalizeHeader(s.Header)] = true
	}
	targetAll := append(append([]gapscan.Section{}, targetChildren...), targetH2...)
	for _, cs := range compChildren {
		ch := gapscan.CleanText(cs.Header)
		if ch == "" || gapscan.LooksLikeQuestion(ch) || a.lex.IsFAQHeader(ch) {
			continue
		}
		if cs.ParentH2 != "" && compH2Norms[gapscan.NormalizeHeader(cs.ParentH2)] {
			continue
		}
		if a.matcher.FindBestMatch(ch, targetAll, a.th.HeaderMatchMinScore) != nil {
			continue
		}
		if a.th.HighPrecision && a.scorer.TopicIsCovered(ch, targetAll, targetCorpus, a.th.HeaderMatchMinScore, a.th.MinSubtopicTextCoverage) {
			continue
		}
		b.add(ch, []string{a.summarizeMissingSection(ch, nil, cs.Content)})
	}

	rows := b.rows()
	if faqRow := a.missingFAQRow(target, comp); faqRow != nil {
		rows = append(rows, *faqRow)
	}
	return gapscan.DedupeRows(rows)
}

// AnalyzeAll runs Rows for every competitor concurrently and returns
// the concatenated, deduplicated rows in competitor order.
func (a *Analyzer) AnalyzeAll(ctx context.Context, target Input, comps []Input) ([]gapscan.GapRow, error) {
	results := make([][]gapscan.GapRow, len(comps))
	g, ctx := errgroup.WithContext(ctx)
	for i, comp := range comps {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			results[i] = a.Rows(target, comp)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var rows []gapscan.GapRow
	for _, r := range results {
		rows = append(rows, r...)
	}
	return gapscan.DedupeRows(rows), nil
}

// informativeChildHeaders returns the child headers of a parent H2,
// dropping questions and FAQ titles.
func (a *Analyzer) informativeChildHeaders(byParent map[string][]gapscan.Section, parent string) []string {
	var out []string
	for _, c := range byParent[gapscan.NormalizeHeader(parent)] {
		h := gapscan.CleanText(c.Header)
		if h == "" || gapscan.LooksLikeQuestion(h) || a.lex.IsFAQHeader(h) {
			continue
		}
		out = append(out, h)
	}
	return out
}

func filterLevel(secs []gapscan.Section, keep func(lvl int) bool) []gapscan.Section {
	var out []gapscan.Section
	for _, s := range secs {
		if keep(s.Level) {
			out = append(out, s)
		}
	}
	return out
}

func childrenByParent(children []gapscan.Section) map[string][]gapscan.Section {
	byParent := make(map[string][]gapscan.Section)
	for _, s := range children {
		pk := gapscan.NormalizeHeader(s.ParentH2)
		if pk == "" {
			continue
		}
		byParent[pk] = append(byParent[pk], s)
	}
	return byParent
}

// combinedContent joins an H2's own content with all of its
// descendants' content.
func combinedContent(lex *gapscan.Lexicon, header string, h2s []gapscan.Section, byParent map[string][]gapscan.Section) string {
	pk := gapscan.NormalizeHeader(header)
	var parts []string
	for _, h2 := range h2s {
		if gapscan.NormalizeHeader(h2.Header) == pk {
			parts = append(parts, h2.Content)
			break
		}
	}
	for _, c := range byParent[pk] {
		parts = append(parts, c.Content)
	}
	return gapscan.CleanText(joinSpace(parts))
}

func joinSpace(parts []string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += p
	}
	return out
}

// rowBuilder accumulates rows keyed by normalized header and source,
// merging description parts and preserving first-seen order.
type rowBuilder struct {
	source string
	order  []string
	byKey  map[string]*pendingRow
}

type pendingRow struct {
	header string
	parts  []string
}

func newRowBuilder(source string) *rowBuilder {
	return &rowBuilder{source: source, byKey: make(map[string]*pendingRow)}
}

func (b *rowBuilder) add(header string, parts []string) {
	if header == "" || len(parts) == 0 {
		return
	}
	key := gapscan.RowKey(header, b.source)
	row, ok := b.byKey[key]
	if !ok {
		row = &pendingRow{header: header}
		b.byKey[key] = row
		b.order = append(b.order, key)
	}
	for _, p := range parts {
		p = gapscan.CleanText(p)
		if p == "" {
			continue
		}
		if p[len(p)-1] != '.' {
			p += "."
		}
		if !containsString(row.parts, p) {
			row.parts = append(row.parts, p)
		}
	}
}

func (b *rowBuilder) rows() []gapscan.GapRow {
	out := make([]gapscan.GapRow, 0, len(b.order))
	for _, key := range b.order {
		row := b.byKey[key]
		out = append(out, gapscan.GapRow{
			Header:      row.header,
			Description: joinSpace(row.parts),
			Source:      b.source,
		})
	}
	return out
}

func containsString(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}
