package gapscan

import (
	"regexp"
	"strings"
	"unicode"
)

// FAQPair is one extracted question/answer pair.
type FAQPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

var (
	mdImageRe       = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	mdLinkRe        = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	listNumberRe    = regexp.MustCompile(`^\s*\d+[\.\)]\s*`)
	listBulletRe    = regexp.MustCompile(`^\s*[-•]\s*`)
	promoQuestionRe = regexp.MustCompile(`\b(looking to (rent|buy)|request a call|contact us|get in touch|subscribe|newsletter)\b`)
	interrogativeRe = regexp.MustCompile(`^(what|where|when|why|how|who|which|can|is|are|do|does|did|should)\b`)

	questionPrefixRe  = regexp.MustCompile(`(?i)^(what|where|when|why|how|who|which|can|is|are|do|does|did|should|could|would|will)\b`)
	auxiliaryPrefixRe = regexp.MustCompile(`(?i)^(is|are|do|does|did|can|should|could|would|will|has|have|had|there|it|this|that)\b`)
	articlePrefixRe   = regexp.MustCompile(`(?i)^\s*(the|a|an)\b`)
)

var interrogativePhrases = []string{"what is", "how to", "is it", "are there", "can i", "should i"}

// LooksLikeQuestion reports whether a string is question-shaped: it
// contains '?', starts with an interrogative or auxiliary word, or
// contains an interrogative phrase. Decorative promotional phrasing is
// excluded even when interrogative-shaped.
func LooksLikeQuestion(s string) bool {
	s = CleanText(s)
	if len(s) < 6 {
		return false
	}
	s = CleanText(stripInlineMarkdown(s))
	if s == "" {
		return false
	}
	low := strings.ToLower(s)
	if promoQuestionRe.MatchString(low) {
		return false
	}
	if strings.Contains(s, "?") {
		return true
	}
	if interrogativeRe.MatchString(low) {
		return true
	}
	for _, p := range interrogativePhrases {
		if strings.Contains(low, p) {
			return true
		}
	}
	return false
}

// NormalizeQuestion strips markdown images/links and leading list
// markers from a question string.
func NormalizeQuestion(q string) string {
	q = CleanText(q)
	q = stripInlineMarkdown(q)
	q = listNumberRe.ReplaceAllString(q, "")
	q = listBulletRe.ReplaceAllString(q, "")
	return strings.TrimSpace(q)
}

// QuestionTopic derives the subject of a question by stripping
// interrogative, auxiliary, and article prefixes and the trailing
// question mark. Falls back to the bare question when the remainder is
// too short; caps at 140 characters; first rune upper-cased.
func QuestionTopic(q string) string {
	raw := NormalizeQuestion(q)
	if raw == "" {
		return ""
	}
	topic := questionPrefixRe.ReplaceAllString(raw, "")
	topic = auxiliaryPrefixRe.ReplaceAllString(strings.TrimSpace(topic), "")
	topic = articlePrefixRe.ReplaceAllString(strings.TrimSpace(topic), "")
	topic = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(topic), "?"))
	if len(topic) < 4 {
		topic = strings.TrimSpace(strings.Trim(raw, "?"))
	}
	if len(topic) > 140 {
		topic = strings.TrimRight(topic[:140], " ")
	}
	if topic == "" {
		return ""
	}
	r := []rune(topic)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func stripInlineMarkdown(s string) string {
	s = mdImageRe.ReplaceAllString(s, " ")
	s = mdLinkRe.ReplaceAllString(s, "$1")
	return CleanText(s)
}

// MergeFAQPairs deduplicates pairs by normalized question. When the
// same question appears more than once, the longer non-empty answer
// wins. Output preserves first-seen question order.
func MergeFAQPairs(pairs []FAQPair) []FAQPair {
	var order []string
	byKey := make(map[string]FAQPair)
	for _, p := range pairs {
		q := CleanText(p.Question)
		if q == "" {
			continue
		}
		k := NormalizeHeader(q)
		if k == "" {
			continue
		}
		a := CleanText(p.Answer)
		existing, ok := byKey[k]
		if !ok {
			byKey[k] = FAQPair{Question: q, Answer: a}
			order = append(order, k)
			continue
		}
		if len(a) > len(existing.Answer) {
			existing.Answer = a
			byKey[k] = existing
		}
	}
	out := make([]FAQPair, 0, len(order))
	for _, k := range order {
		out = append(out, byKey[k])
	}
	return out
}

// FAQMatcher determines question-level equivalence. It holds only
// immutable configuration and is safe for concurrent use.
type FAQMatcher struct {
	lex     *Lexicon
	matcher *Matcher
}

// NewFAQMatcher returns an FAQMatcher over the given lexicon and
// header matcher.
func NewFAQMatcher(lex *Lexicon, matcher *Matcher) *FAQMatcher {
	return &FAQMatcher{lex: lex, matcher: matcher}
}

// QuestionsEquivalent reports whether two questions ask the same thing:
// equal normalized strings, a substring relation with both sides >= 12
// chars, equal or near-equal derived topics (equality, >= 10-char
// substring, or similarity >= 0.82), strong core-token overlap (>= 0.8
// of the smaller set when it has >= 2 tokens, or Jaccard >= 0.67 with
// >= 2 shared tokens), or a final sequence-similarity >= 0.90.
func (f *FAQMatcher) QuestionsEquivalent(a, b string) bool {
	aq := NormalizeQuestion(a)
	bq := NormalizeQuestion(b)
	if aq == "" || bq == "" {
		return false
	}

	an := NormalizeHeader(aq)
	bn := NormalizeHeader(bq)
	if an == bn {
		return true
	}
	if an != "" && bn != "" && (strings.Contains(an, bn) || strings.Contains(bn, an)) {
		if min(len(an), len(bn)) >= 12 {
			return true
		}
	}

	aTopic := NormalizeHeader(QuestionTopic(aq))
	bTopic := NormalizeHeader(QuestionTopic(bq))
	if aTopic != "" && bTopic != "" {
		if aTopic == bTopic {
			return true
		}
		if (strings.Contains(aTopic, bTopic) || strings.Contains(bTopic, aTopic)) && min(len(aTopic), len(bTopic)) >= 10 {
			return true
		}
		if f.matcher.Similarity(aTopic, bTopic) >= 0.82 {
			return true
		}
	}

	aTokens := toSet(f.lex.FAQCoreTokens(aq)...)
	bTokens := toSet(f.lex.FAQCoreTokens(bq)...)
	if len(aTokens) > 0 && len(bTokens) > 0 {
		overlap := intersectionSize(aTokens, bTokens)
		small := min(len(aTokens), len(bTokens))
		if small >= 2 && float64(overlap)/float64(small) >= 0.8 {
			return true
		}
		union := len(aTokens) + len(bTokens) - overlap
		if overlap >= 2 && float64(overlap)/float64(max(union, 1)) >= 0.67 {
			return true
		}
	}

	return SequenceRatio(an, bn) >= 0.90
}

// ValidFAQQuestion filters out degenerate and promotional questions
// before they participate in FAQ comparison.
func ValidFAQQuestion(q string) bool {
	qn := NormalizeQuestion(q)
	if len(qn) <= 5 {
		return false
	}
	if !LooksLikeQuestion(qn) {
		return false
	}
	return !promoQuestionRe.MatchString(strings.ToLower(qn))
}

// FAQTopicCovered reports whether the derived topic of a question is
// covered by the target text at the FAQ coverage threshold. Topics with
// <= 2 core tokens require full coverage.
func (s *Scorer) FAQTopicCovered(question, text string, minCoverage float64) bool {
	topic := QuestionTopic(question)
	if topic == "" {
		return false
	}
	toks := s.lex.CoreTokens(topic)
	if len(toks) == 0 {
		return false
	}
	cov := s.TopicCoverageRatio(topic, text)
	if len(toks) <= 2 {
		return cov >= 1.0
	}
	return cov >= minCoverage
}

// FAQHeadingNodes returns the level 2-4 nodes whose headers name FAQ
// sections.
func FAQHeadingNodes(lex *Lexicon, nodes []*HeadingNode) []FlatNode {
	var out []FlatNode
	for _, x := range Flatten(nodes) {
		if x.Level >= 2 && x.Level <= 4 && lex.IsFAQHeader(x.Header) {
			out = append(out, x)
		}
	}
	return out
}

// QuestionsFromNode extracts question strings from an FAQ node: its
// question-shaped child headings first, then (when fewer than three
// were found) question-shaped fragments of its body text. Deduplicated
// by normalized string, capped at 25.
func QuestionsFromNode(node FlatNode) []string {
	var qs []string
	for _, c := range node.Children {
		if h := CleanText(c.Header); h != "" && LooksLikeQuestion(h) {
			qs = append(qs, NormalizeQuestion(h))
		}
	}

	if len(qs) < 3 {
		chunks := splitSentences(node.Content)
		if len(chunks) > 80 {
			chunks = chunks[:80]
		}
		for _, ch := range chunks {
			ch = CleanText(ch)
			if ch == "" || len(ch) > 160 {
				continue
			}
			if LooksLikeQuestion(ch) {
				qs = append(qs, NormalizeQuestion(ch))
			}
		}
	}

	seen := make(map[string]bool, len(qs))
	var out []string
	for _, q := range qs {
		k := NormalizeHeader(q)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, q)
		if len(out) >= 25 {
			break
		}
	}
	return out
}

// splitSentences splits text on line breaks and sentence terminators,
// keeping each terminator with its fragment so question marks survive.
func splitSentences(text string) []string {
	var out []string
	var cur []rune
	runes := []rune(CleanText(text))
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\n' || r == '\r' {
			if len(cur) > 0 {
				out = append(out, string(cur))
				cur = cur[:0]
			}
			continue
		}
		cur = append(cur, r)
		if (r == '.' || r == '?' || r == '!') && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}

// PairsFromNodes extracts question/answer pairs from the tree: under
// each FAQ heading, a question-shaped child heading is the question and
// its body text the answer.
func PairsFromNodes(lex *Lexicon, nodes []*HeadingNode) []FAQPair {
	var pairs []FAQPair
	for _, fn := range FAQHeadingNodes(lex, nodes) {
		for _, c := range fn.Children {
			q := CleanText(c.Header)
			if q == "" || !LooksLikeQuestion(q) {
				continue
			}
			pairs = append(pairs, FAQPair{
				Question: NormalizeQuestion(q),
				Answer:   CleanText(c.Content),
			})
		}
	}
	return pairs
}
