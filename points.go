package gapscan

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Key-point extraction: names the concrete things a missing section
// talks about so a gap row can say more than "section absent". Points
// come from child subtopic headers first, then repeated noun phrases in
// the section body, then the fixed signal-label lookup as a last
// resort.

var (
	trailingPunctRe = regexp.MustCompile(`\s*[:\-–—]\s*$`)
	urlishRe        = regexp.MustCompile(`(?i)https?://|www\.|\[[^\]]+\]\([^)]+\)|\|`)
	phraseTokenRe   = regexp.MustCompile(`[a-z0-9]+`)
	leadBulletsRe   = regexp.MustCompile(`^\s*[-•]+\s*`)
)

// CleanCandidatePoint strips markdown artifacts, list markers, and
// trailing label punctuation from a candidate point.
func CleanCandidatePoint(text string) string {
	s := CleanText(text)
	s = stripInlineMarkdown(s)
	s = listNumberRe.ReplaceAllString(s, "")
	s = leadBulletsRe.ReplaceAllString(s, "")
	s = trailingPunctRe.ReplaceAllString(s, "")
	s = strings.Trim(CleanText(s), " .,-")
	return CleanText(s)
}

// IsValidSectionPoint reports whether a candidate point is worth
// listing: 4-74 characters, not question-shaped or an FAQ title, no
// URLs or table syntax, mostly alphabetic, not a generic section word,
// and not matching any noise pattern.
func (lex *Lexicon) IsValidSectionPoint(point string) bool {
	p := CleanCandidatePoint(point)
	if p == "" {
		return false
	}
	if len(p) < 4 || len(p) > 74 {
		return false
	}
	if LooksLikeQuestion(p) || lex.IsFAQHeader(p) {
		return false
	}
	if urlishRe.MatchString(p) {
		return false
	}
	pn := NormalizeHeader(p)
	if pn == "" || lex.SectionPointSkip[pn] {
		return false
	}
	if alphaRatio(p) < 0.55 {
		return false
	}
	for _, pat := range lex.NoisePatterns {
		if pat.MatchString(pn) {
			return false
		}
	}
	return true
}

// PhraseCandidates counts repeated 2-4 word phrases in the text. The
// first and last word of a phrase must be content-bearing, and phrases
// shorter than 8 characters are dropped.
func (lex *Lexicon) PhraseCandidates(text string, nMin, nMax int) map[string]int {
	toks := phraseTokens(text)
	freq := make(map[string]int)
	for n := nMin; n <= nMax; n++ {
		for i := 0; i+n <= len(toks); i++ {
			chunk := toks[i : i+n]
			if lex.Stop[chunk[0]] || lex.Stop[chunk[n-1]] {
				continue
			}
			allFiller := true
			for _, w := range chunk {
				if !lex.Stop[w] && !lex.GenericTokens[w] {
					allFiller = false
					break
				}
			}
			if allFiller {
				continue
			}
			phrase := strings.Join(chunk, " ")
			if len(phrase) < 8 {
				continue
			}
			freq[phrase]++
		}
	}
	return freq
}

// PointsFromSubheaders returns the valid, deduplicated child headers of
// a section as key points.
func (lex *Lexicon) PointsFromSubheaders(subheaders []string, limit int) []string {
	var out []string
	seen := make(map[string]bool)
	for _, raw := range subheaders {
		p := CleanCandidatePoint(raw)
		if !lex.IsValidSectionPoint(p) {
			continue
		}
		k := NormalizeHeader(p)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// PointsFromContent extracts key points from a section body via
// repeated-phrase frequency, title-cased, skipping phrases that merely
// restate the section header.
func (lex *Lexicon) PointsFromContent(matcher *Matcher, content, sectionHeader string, limit int) []string {
	txt := CleanText(content)
	if len(txt) < 160 {
		return nil
	}
	freq := lex.PhraseCandidates(txt, 2, 4)
	if len(freq) == 0 {
		return nil
	}

	type scored struct {
		phrase string
		count  int
	}
	ranked := make([]scored, 0, len(freq))
	for p, c := range freq {
		ranked = append(ranked, scored{p, c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		if len(ranked[i].phrase) != len(ranked[j].phrase) {
			return len(ranked[i].phrase) > len(ranked[j].phrase)
		}
		return ranked[i].phrase < ranked[j].phrase
	})

	var out []string
	seen := make(map[string]bool)
	for _, sc := range ranked {
		if sc.count < 2 && len(out) >= 2 {
			continue
		}
		p := TitleCase(CleanCandidatePoint(sc.phrase))
		if !lex.IsValidSectionPoint(p) {
			continue
		}
		if sectionHeader != "" && matcher.Similarity(sectionHeader, p) >= 0.95 {
			continue
		}
		if len(lex.CoreTokens(p)) == 0 {
			continue
		}
		k := NormalizeHeader(p)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// SignalPointsInText returns the signal-label fallback points whose
// keyword sets fire on the text.
func (lex *Lexicon) SignalPointsInText(text string, limit int) []string {
	t := NormalizeHeader(text)
	if t == "" {
		return nil
	}
	var out []string
	for _, sl := range lex.SignalLabels {
		if len(out) >= limit {
			break
		}
		for _, sig := range sl.Signals {
			if containsSignal(t, sig) {
				out = append(out, sl.Label)
				break
			}
		}
	}
	return out
}

// SectionKeyPoints extracts up to limit key points for a section, in
// priority order: child subtopic headers, repeated body phrases, then
// signal labels over the whole section scope.
func (lex *Lexicon) SectionKeyPoints(matcher *Matcher, sectionHeader string, subheaders []string, sectionText string, limit int) []string {
	var out []string
	seen := make(map[string]bool)

	appendPoints := func(points []string, capN int) {
		for _, p := range points {
			pp := CleanCandidatePoint(p)
			if !lex.IsValidSectionPoint(pp) {
				continue
			}
			k := NormalizeHeader(pp)
			if k == "" || seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, pp)
			if len(out) >= capN {
				break
			}
		}
	}

	appendPoints(lex.PointsFromSubheaders(subheaders, max(limit*2, 8)), limit)
	if len(out) < limit {
		appendPoints(lex.PointsFromContent(matcher, sectionText, sectionHeader, max(limit*2, 8)), limit)
	}
	if len(out) == 0 {
		scope := CleanText(strings.Join(append([]string{sectionHeader, sectionText}, subheaders...), " "))
		appendPoints(lex.SignalPointsInText(scope, limit), limit)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TitleCase title-cases a phrase, keeping common joiner words lower
// after the first word.
func TitleCase(phrase string) string {
	words := strings.Fields(CleanText(phrase))
	if len(words) == 0 {
		return ""
	}
	keepLower := toSet("and", "or", "of", "in", "on", "to", "for", "vs", "the", "a", "an", "with")
	out := make([]string, 0, len(words))
	for i, w := range words {
		lw := strings.ToLower(w)
		if i > 0 && keepLower[lw] {
			out = append(out, lw)
			continue
		}
		r := []rune(lw)
		r[0] = unicode.ToUpper(r[0])
		out = append(out, string(r))
	}
	return strings.Join(out, " ")
}

func containsSignal(textNorm, signal string) bool {
	sig := NormalizeHeader(signal)
	if sig == "" {
		return false
	}
	if strings.Contains(sig, " ") {
		return strings.Contains(textNorm, sig)
	}
	for _, w := range strings.Fields(textNorm) {
		if w == sig {
			return true
		}
	}
	return false
}

func phraseTokens(text string) []string {
	t := strings.ToLower(text)
	t = nonAlnumRe.ReplaceAllString(t, " ")
	var out []string
	for _, tok := range phraseTokenRe.FindAllString(t, -1) {
		if len(tok) >= 3 {
			out = append(out, tok)
		}
	}
	return out
}

func alphaRatio(s string) float64 {
	total, n := 0, 0
	for _, r := range s {
		total++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			n++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}
