package gapscan

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// GapRow is the terminal output unit: one topic, subtopic, or FAQ gap
// reported for a competitor. Source is an opaque presentation label
// (typically an inline hyperlink built from the competitor host).
type GapRow struct {
	Header      string `json:"Headers"`
	Description string `json:"Description"`
	Source      string `json:"Source"`
}

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// RowKey returns the deduplication key for a row: normalized header
// plus normalized source with markup stripped. The same gap is never
// reported twice for the same competitor.
func RowKey(header, source string) string {
	return NormalizeHeader(header) + "||" + NormalizeHeader(htmlTagRe.ReplaceAllString(source, ""))
}

// DedupeRows removes rows whose (header, source) key repeats, keeping
// the first occurrence and the input order.
func DedupeRows(rows []GapRow) []GapRow {
	seen := make(map[string]bool, len(rows))
	out := make([]GapRow, 0, len(rows))
	for _, r := range rows {
		k := RowKey(r.Header, r.Source)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}

// FormatGapList joins items into a display list: cleaned, deduplicated
// by normalized form, skip-listed fillers dropped, capped at limit with
// an ", and N more" suffix for the overflow.
func (lex *Lexicon) FormatGapList(items []string, limit int) string {
	var cleaned []string
	seen := make(map[string]bool)
	for _, item := range items {
		it := CleanText(item)
		if it == "" {
			continue
		}
		k := NormalizeHeader(it)
		if lex.GapListSkip[k] || seen[k] {
			continue
		}
		seen[k] = true
		cleaned = append(cleaned, it)
	}
	if len(cleaned) == 0 {
		return ""
	}
	if limit <= 0 || len(cleaned) <= limit {
		return strings.Join(cleaned, ", ")
	}
	return strings.Join(cleaned[:limit], ", ") + fmt.Sprintf(", and %d more", len(cleaned)-limit)
}

// ThemeFlags returns the set of theme flags raised by the text
// (transport, cost, safety, ...), via keyword-set membership.
func (lex *Lexicon) ThemeFlags(text string) map[string]bool {
	t := strings.ToLower(text)
	flags := make(map[string]bool)
	for flag, words := range lex.ThemeKeywords {
		for _, w := range words {
			if strings.Contains(t, w) {
				flags[flag] = true
				break
			}
		}
	}
	return flags
}

// ThemeLabelsFor maps theme flags to their human-readable labels in
// deterministic order.
func (lex *Lexicon) ThemeLabelsFor(flags map[string]bool) []string {
	keys := make([]string, 0, len(flags))
	for f := range flags {
		keys = append(keys, f)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, f := range keys {
		if label, ok := lex.ThemeLabels[f]; ok {
			out = append(out, label)
		} else {
			out = append(out, f)
		}
	}
	return out
}
