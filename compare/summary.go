package compare

import "github.com/fwojciec/gapscan"

// missingContentPoints returns competitor key points that the target
// covers neither in the matched section, nor in its text, nor (in high
// precision mode) anywhere in the whole article.
func (a *Analyzer) missingContentPoints(compHeader, compText, targetText, targetCorpus string, compChildren, targetChildren []string, limit int) []string {
	seedLimit := limit * 3
	if seedLimit < 10 {
		seedLimit = 10
	}
	points := a.lex.SectionKeyPoints(a.matcher, compHeader, compChildren, compText, seedLimit)
	if len(points) == 0 {
		return nil
	}

	local := gapscan.CleanText(targetText)
	global := gapscan.CleanText(targetCorpus)
	childSecs := make([]gapscan.Section, 0, len(targetChildren))
	for _, h := range targetChildren {
		if gapscan.CleanText(h) != "" {
			childSecs = append(childSecs, gapscan.Section{Header: h})
		}
	}

	globalMin := a.th.MinSubtopicTextCoverage + 0.08
	if globalMin < 0.78 {
		globalMin = 0.78
	}

	var out []string
	seen := make(map[string]bool)
	for _, point := range points {
		pk := gapscan.NormalizeHeader(point)
		if pk == "" || seen[pk] {
			continue
		}
		if a.scorer.TopicIsCovered(point, childSecs, local, a.th.HeaderMatchMinScore, a.th.MinSubtopicTextCoverage) {
			continue
		}
		if a.scorer.SubtopicCoveredInText(point, local) {
			continue
		}
		if a.th.HighPrecision && global != "" &&
			a.scorer.TopicIsCovered(point, nil, global, a.th.HeaderMatchMinScore, globalMin) {
			continue
		}
		seen[pk] = true
		out = append(out, point)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// summarizeMissingSection writes the action line for a header the
// target lacks entirely: seed points first, theme labels as fallback.
func (a *Analyzer) summarizeMissingSection(header string, subheaders []string, compContent string) string {
	seeds := a.lex.SectionKeyPoints(a.matcher, header, subheaders, compContent, 4)
	if len(seeds) > 0 {
		if list := a.lex.FormatGapList(seeds, 4); list != "" {
			return "Add this header with: " + list + "."
		}
	}
	scope := gapscan.CleanText(joinSpace(append([]string{header, compContent}, subheaders...)))
	picks := a.lex.ThemeLabelsFor(a.lex.ThemeFlags(scope))
	if list := a.lex.FormatGapList(picks, 3); list != "" {
		return "Add this header with: " + list + "."
	}
	return "Add this header with key practical details."
}

// summarizeContentGap names the themes present in the competitor's
// section but absent from the target's.
func (a *Analyzer) summarizeContentGap(compContent, targetContent string) string {
	compFlags := a.lex.ThemeFlags(compContent)
	targetFlags := a.lex.ThemeFlags(targetContent)
	diff := make(map[string]bool)
	for k := range compFlags {
		if !targetFlags[k] {
			diff[k] = true
		}
	}
	if list := a.lex.FormatGapList(a.lex.ThemeLabelsFor(diff), 4); list != "" {
		return "Missing depth on: " + list + "."
	}
	return "Missing depth and practical specifics in this section."
}

// depthGapSummary reports a depth gap when the competitor's section is
// substantial and markedly longer than the target's, with either a
// theme the target misses or a very long body.
func (a *Analyzer) depthGapSummary(compText, targetText string) string {
	c := gapscan.CleanText(compText)
	b := gapscan.CleanText(targetText)
	if len(c) < 140 {
		return ""
	}
	base := len(b)
	if base < 1 {
		base = 1
	}
	if float64(len(c)) < 1.30*float64(base) {
		return ""
	}
	compFlags := a.lex.ThemeFlags(c)
	targetFlags := a.lex.ThemeFlags(b)
	extra := 0
	for k := range compFlags {
		if !targetFlags[k] {
			extra++
		}
	}
	if extra < 1 && len(c) < 650 {
		return ""
	}
	return a.summarizeContentGap(c, b)
}
