package gapscan

import (
	"sort"
	"strings"
)

// Matcher computes lexical similarity between headers and selects best
// matches against candidate sections. It holds only immutable
// configuration and is safe for concurrent use.
type Matcher struct {
	lex *Lexicon
	th  Thresholds
}

// NewMatcher returns a Matcher over the given lexicon and thresholds.
func NewMatcher(lex *Lexicon, th Thresholds) *Matcher {
	return &Matcher{lex: lex, th: th}
}

// Similarity returns a blended similarity score in [0,1] for two
// headers. The base blend is 0.55 sequence similarity + 0.45 word-set
// Jaccard over the normalized strings; a second blend (0.60/0.40) is
// computed over core tokens only, plus a subset bonus of 0.84 when one
// side's 2-3-token core set is contained in the other's. The final
// score is the max of the three, multiplied by 0.58 when the headers
// carry opposite polarity markers (the pros/cons guard).
func (m *Matcher) Similarity(a, b string) float64 {
	an := NormalizeHeader(a)
	bn := NormalizeHeader(b)
	if an == "" || bn == "" {
		return 0
	}

	aSet := wordSet(an)
	bSet := wordSet(bn)
	base := 0.55*SequenceRatio(an, bn) + 0.45*jaccard(aSet, bSet)

	// Extra tolerance for cosmetic variants: "The Light Village" should
	// still line up with "About Sharjah Light Village".
	aCore := toSet(m.lex.CoreTokens(a)...)
	bCore := toSet(m.lex.CoreTokens(b)...)
	score := base
	if len(aCore) > 0 && len(bCore) > 0 {
		coreSeq := SequenceRatio(sortedJoin(aCore), sortedJoin(bCore))
		coreScore := 0.60*coreSeq + 0.40*jaccard(aCore, bCore)

		subsetBonus := 0.0
		smallest := min(len(aCore), len(bCore))
		if smallest >= 2 && smallest <= 3 && (isSubset(aCore, bCore) || isSubset(bCore, aCore)) {
			subsetBonus = 0.84
		}

		score = max(base, max(coreScore, subsetBonus))
	}

	for _, group := range m.lex.OppositeGroups {
		aPos := m.lex.hasMarker(a, group[0])
		aNeg := m.lex.hasMarker(a, group[1])
		bPos := m.lex.hasMarker(b, group[0])
		bNeg := m.lex.hasMarker(b, group[1])
		if (aPos && bNeg) || (aNeg && bPos) {
			score *= 0.58
			break
		}
	}

	return score
}

// Match is an accepted candidate with its similarity score.
type Match struct {
	Section Section
	Score   float64
}

// FindBestMatch picks the candidate section most similar to header.
// The best candidate is accepted when its score reaches minScore, or
// through the fallback: score >= the fallback threshold and core-token
// overlap (intersection over the smaller core set) >= the configured
// minimum. The fallback tolerates wording drift while still requiring
// topical overlap. Returns nil when nothing qualifies.
func (m *Matcher) FindBestMatch(header string, candidates []Section, minScore float64) *Match {
	var best *Section
	bestScore := 0.0
	for i := range candidates {
		sc := m.Similarity(header, candidates[i].Header)
		if sc > bestScore {
			bestScore = sc
			best = &candidates[i]
		}
	}
	if best == nil {
		return nil
	}
	if bestScore >= minScore {
		return &Match{Section: *best, Score: bestScore}
	}

	hCore := toSet(m.lex.CoreTokens(header)...)
	cCore := toSet(m.lex.CoreTokens(best.Header)...)
	if len(hCore) > 0 && len(cCore) > 0 {
		overlap := float64(intersectionSize(hCore, cCore)) / float64(min(len(hCore), len(cCore)))
		if overlap >= m.th.FallbackTokenOverlap && bestScore >= m.th.HeaderMatchFallbackScore {
			return &Match{Section: *best, Score: bestScore}
		}
	}
	return nil
}

// SequenceRatio returns the difflib-style similarity of two strings:
// twice the number of matching characters (over the recursively longest
// matching blocks) divided by the total length. Arguments are put in
// canonical order first so the ratio is exactly symmetric. Returns 1.0
// for two empty strings.
func SequenceRatio(a, b string) float64 {
	if a > b {
		a, b = b, a
	}
	ar := []rune(a)
	br := []rune(b)
	total := len(ar) + len(br)
	if total == 0 {
		return 1.0
	}
	matches := matchingRunes(ar, br, 0, len(ar), 0, len(br))
	return 2.0 * float64(matches) / float64(total)
}

func matchingRunes(a, b []rune, alo, ahi, blo, bhi int) int {
	ai, bi, size := longestMatch(a, b, alo, ahi, blo, bhi)
	if size == 0 {
		return 0
	}
	n := size
	n += matchingRunes(a, b, alo, ai, blo, bi)
	n += matchingRunes(a, b, ai+size, ahi, bi+size, bhi)
	return n
}

func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	b2j := make(map[rune][]int)
	for j := blo; j < bhi; j++ {
		b2j[b[j]] = append(b2j[b[j]], j)
	}

	besti, bestj = alo, blo
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return besti, bestj, bestsize
}

func wordSet(normalized string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(normalized) {
		set[w] = true
	}
	return set
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := intersectionSize(a, b)
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func intersectionSize(a, b map[string]bool) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if b[k] {
			n++
		}
	}
	return n
}

func isSubset(a, b map[string]bool) bool {
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func sortedJoin(set map[string]bool) string {
	toks := make([]string, 0, len(set))
	for t := range set {
		toks = append(toks, t)
	}
	sort.Strings(toks)
	return strings.Join(toks, " ")
}
