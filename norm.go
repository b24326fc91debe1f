package gapscan

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	spaceRe    = regexp.MustCompile(`\s+`)
	nonAlnumRe = regexp.MustCompile(`[^a-z0-9\s]`)
	wordRe     = regexp.MustCompile(`[a-z0-9]+`)
)

// CleanText collapses all whitespace runs to single spaces and trims.
func CleanText(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// NormalizeHeader canonicalizes a header for comparison: lowercase,
// strip everything but letters, digits, and spaces, collapse
// whitespace. Pure and idempotent; empty input yields empty output.
func NormalizeHeader(s string) string {
	h := strings.ToLower(CleanText(s))
	h = nonAlnumRe.ReplaceAllString(h, "")
	return CleanText(h)
}

// Stem applies light suffix stripping: "...ies" -> "...y" for tokens
// longer than 5 characters, trailing "s" removed for tokens longer
// than 3. Intentionally crude and deterministic; not a linguistic
// stemmer.
func Stem(tok string) string {
	t := strings.ToLower(CleanText(tok))
	if len(t) > 5 && strings.HasSuffix(t, "ies") {
		return t[:len(t)-3] + "y"
	}
	if len(t) > 3 && strings.HasSuffix(t, "s") {
		return t[:len(t)-1]
	}
	return t
}

// Tokenize normalizes the text and returns its stemmed word tokens.
func Tokenize(s string) []string {
	words := wordRe.FindAllString(NormalizeHeader(s), -1)
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, Stem(w))
	}
	return out
}

// TokenSet returns the stemmed tokens of s as a set.
func TokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range Tokenize(s) {
		set[t] = true
	}
	return set
}

// aliasBucket returns the full alias set containing the stemmed token,
// or nil if the token belongs to no table.
func aliasBucket(tables map[string][]string, stem string) map[string]bool {
	for key, vals := range tables {
		bucket := make(map[string]bool, len(vals)+1)
		bucket[Stem(key)] = true
		for _, v := range vals {
			bucket[Stem(v)] = true
		}
		if bucket[stem] {
			return bucket
		}
	}
	return nil
}

// CanonicalToken maps a token onto the canonical member of its topic
// alias set; tokens outside every table stem to themselves.
func (lex *Lexicon) CanonicalToken(tok string) string {
	stem := Stem(tok)
	for key, vals := range lex.TopicAliases {
		bucket := map[string]bool{Stem(key): true}
		for _, v := range vals {
			bucket[Stem(v)] = true
		}
		if bucket[stem] {
			return Stem(key)
		}
	}
	return stem
}

// Aliases expands a token to its symmetric, closed synonym set. A token
// in no table maps to itself only.
func (lex *Lexicon) Aliases(tok string) map[string]bool {
	stem := Stem(tok)
	out := map[string]bool{stem: true}
	if b := aliasBucket(lex.TopicAliases, stem); b != nil {
		for t := range b {
			out[t] = true
		}
	}
	if b := aliasBucket(lex.SubtopicAliases, stem); b != nil {
		for t := range b {
			out[t] = true
		}
	}
	return out
}

// CoreTokens extracts the content-bearing tokens of a header: stemmed,
// alias-canonicalized, with stop words, generic filler, and tokens
// shorter than 3 characters removed.
func (lex *Lexicon) CoreTokens(s string) []string {
	var out []string
	for _, tok := range Tokenize(s) {
		canon := lex.CanonicalToken(tok)
		if len(canon) < 3 {
			continue
		}
		if lex.Stop[canon] || lex.GenericTokens[canon] {
			continue
		}
		out = append(out, canon)
	}
	return out
}

// FAQCoreTokens extracts the content-bearing tokens of a question,
// filtering FAQ filler words instead of header filler.
func (lex *Lexicon) FAQCoreTokens(q string) []string {
	var out []string
	for _, tok := range Tokenize(NormalizeQuestion(q)) {
		if len(tok) < 3 {
			continue
		}
		if lex.Stop[tok] || lex.FAQFillerTokens[tok] {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// hasMarker reports whether any stemmed token of text appears in the
// stemmed marker set.
func (lex *Lexicon) hasMarker(text string, markers []string) bool {
	toks := TokenSet(text)
	if len(toks) == 0 {
		return false
	}
	for _, m := range markers {
		if toks[Stem(m)] {
			return true
		}
	}
	return false
}

// IsFAQHeader reports whether a header names an FAQ section.
func (lex *Lexicon) IsFAQHeader(header string) bool {
	nh := NormalizeHeader(header)
	if nh == "" {
		return false
	}
	if lex.FAQTitles[nh] {
		return true
	}
	return strings.Contains(nh, "faq") || strings.Contains(nh, "frequently asked")
}

// IsNoiseHeader reports whether a header is decorative or navigational
// rather than article structure: empty, too short after normalization,
// over-long, low alphanumeric density, a bare generic section title, or
// matching a promotional/navigational pattern. FAQ titles are exempt.
func (lex *Lexicon) IsNoiseHeader(header string) bool {
	s := CleanText(header)
	if s == "" {
		return true
	}
	if lex.IsFAQHeader(s) {
		return false
	}
	hn := NormalizeHeader(s)
	if lex.GenericSectionHeaders[hn] {
		return true
	}
	if len(hn) < 4 {
		return true
	}
	if len(s) > 95 {
		return true
	}
	if alnumRatio(s) < 0.6 {
		return true
	}
	for _, pat := range lex.NoisePatterns {
		if pat.MatchString(hn) {
			return true
		}
	}
	return false
}

// IsLowSignalSubtopic reports whether a subtopic header is pure
// contact/location boilerplate that would only produce noise gaps.
func (lex *Lexicon) IsLowSignalSubtopic(header string) bool {
	hn := NormalizeHeader(header)
	if hn == "" {
		return true
	}
	if lex.LowSignalSubtopics[hn] {
		return true
	}
	words := strings.Fields(hn)
	if len(words) == 1 {
		switch words[0] {
		case "location", "contact", "address", "map", "website", "phone":
			return true
		}
	}
	return false
}

func alnumRatio(s string) float64 {
	total, n := 0, 0
	for _, r := range s {
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			n++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}
