package gapscan

import "strings"

// Scorer decides whether topics, subtopics, and questions are covered
// by a target document's sections and text. It holds only immutable
// configuration and is safe for concurrent use.
type Scorer struct {
	lex     *Lexicon
	matcher *Matcher
}

// NewScorer returns a Scorer over the given lexicon and matcher.
func NewScorer(lex *Lexicon, matcher *Matcher) *Scorer {
	return &Scorer{lex: lex, matcher: matcher}
}

// TopicCoverageRatio returns the fraction of the topic's core tokens
// (alias-expanded) found in the text's token set. Degenerate inputs
// yield 0.
func (s *Scorer) TopicCoverageRatio(topic, text string) float64 {
	topicTokens := s.lex.CoreTokens(topic)
	if len(topicTokens) == 0 {
		return 0
	}
	textTokens := TokenSet(text)
	if len(textTokens) == 0 {
		return 0
	}
	hits := 0
	for _, tok := range topicTokens {
		if s.aliasHit(tok, textTokens) {
			hits++
		}
	}
	return float64(hits) / float64(len(topicTokens))
}

// TopicIsCovered reports whether the target document covers a topic:
// (a) some target section header matches it at >= minHeaderScore, or
// (b) the normalized topic (>= 14 chars) is a literal substring of the
// normalized corpus, or (c) the alias-expanded token coverage ratio
// reaches minTextCoverage. Topics with <= 2 core tokens require full
// coverage; a topic with no core tokens at all is never covered by
// ratio. An empty topic is trivially covered.
func (s *Scorer) TopicIsCovered(topic string, sections []Section, corpus string, minHeaderScore, minTextCoverage float64) bool {
	t := CleanText(topic)
	if t == "" {
		return true
	}

	best := 0.0
	for _, sec := range sections {
		h := CleanText(sec.Header)
		if h == "" {
			continue
		}
		if sc := s.matcher.Similarity(t, h); sc > best {
			best = sc
		}
	}
	if best >= minHeaderScore {
		return true
	}

	topicN := NormalizeHeader(t)
	if len(topicN) >= 14 && strings.Contains(NormalizeHeader(corpus), topicN) {
		return true
	}

	coverage := s.TopicCoverageRatio(t, corpus)
	toks := s.lex.CoreTokens(t)
	if len(toks) == 0 {
		return false
	}
	if len(toks) <= 2 {
		return coverage >= 1.0
	}
	return coverage >= minTextCoverage
}

// SubtopicCoveredInText is the looser per-section check: a literal
// substring hit, or >= 1 alias token hit for subtopics with <= 2 core
// tokens, >= 2 hits otherwise.
func (s *Scorer) SubtopicCoveredInText(subtopic, text string) bool {
	t := CleanText(text)
	if t == "" {
		return false
	}

	subN := NormalizeHeader(subtopic)
	if subN != "" && strings.Contains(NormalizeHeader(t), subN) {
		return true
	}

	subTokens := s.lex.CoreTokens(subtopic)
	if len(subTokens) == 0 {
		return false
	}
	textTokens := TokenSet(t)
	if len(textTokens) == 0 {
		return false
	}

	hits := 0
	for _, tok := range subTokens {
		if s.aliasHit(tok, textTokens) {
			hits++
		}
	}
	if len(subTokens) <= 2 {
		return hits >= 1
	}
	return hits >= 2
}

func (s *Scorer) aliasHit(tok string, textTokens map[string]bool) bool {
	for alias := range s.lex.Aliases(tok) {
		if textTokens[alias] {
			return true
		}
	}
	return false
}
