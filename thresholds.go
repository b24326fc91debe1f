package gapscan

// Thresholds holds the acceptance cutoffs used by the matcher, the
// coverage scorer, and the report assembler. A Thresholds value is
// immutable after construction and shared read-only across analyses.
type Thresholds struct {
	// HeaderMatchMinScore is the similarity needed to accept a header
	// match outright.
	HeaderMatchMinScore float64

	// HeaderMatchFallbackScore is the lower similarity accepted when
	// core-token overlap is strong enough.
	HeaderMatchFallbackScore float64

	// FallbackTokenOverlap is the minimum core-token overlap ratio
	// (intersection over the smaller set) required by the fallback.
	FallbackTokenOverlap float64

	// MinHeaderTextCoverage, MinSubtopicTextCoverage, and
	// MinFAQTextCoverage are the token-coverage ratios required for a
	// section header, a subtopic, or an FAQ topic to count as covered
	// by body text. Finer-grained topics tolerate more partial
	// coverage.
	MinHeaderTextCoverage   float64
	MinSubtopicTextCoverage float64
	MinFAQTextCoverage      float64

	// MaxContentGapItems caps the missing points listed per section.
	MaxContentGapItems int

	// MaxFAQItems caps the questions listed in the FAQ row; overflow
	// is reported as a count.
	MaxFAQItems int

	// HighPrecision suppresses an unmatched section when the
	// whole-document coverage check already considers it covered,
	// trading recall for fewer false gaps.
	HighPrecision bool
}

// DefaultThresholds returns the balanced defaults: catch genuine gaps
// while filtering obvious noise.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HeaderMatchMinScore:      0.69,
		HeaderMatchFallbackScore: 0.62,
		FallbackTokenOverlap:     0.67,
		MinHeaderTextCoverage:    0.66,
		MinSubtopicTextCoverage:  0.62,
		MinFAQTextCoverage:       0.58,
		MaxContentGapItems:       4,
		MaxFAQItems:              4,
		HighPrecision:            true,
	}
}
