package gapscan

import "regexp"

// Lexicon bundles the heuristic vocabulary the engine matches against:
// stop words, alias tables, noise patterns, polarity groups, and theme
// keyword sets. A Lexicon is immutable after construction and may be
// shared read-only across concurrent analyses.
type Lexicon struct {
	// Stop contains language function words excluded from core tokens.
	Stop map[string]bool

	// GenericTokens contains domain filler words ("guide", "overview")
	// excluded from header core tokens.
	GenericTokens map[string]bool

	// FAQFillerTokens are excluded from FAQ question core tokens.
	FAQFillerTokens map[string]bool

	// TopicAliases and SubtopicAliases map a canonical stemmed token to
	// its synonym set. Lookup is symmetric: any member of a set expands
	// to the whole set.
	TopicAliases    map[string][]string
	SubtopicAliases map[string][]string

	// OppositeGroups holds pairs of marker sets whose members must not
	// match each other (the polarity guard).
	OppositeGroups [][2][]string

	// NoisePatterns match promotional/navigational headers that carry
	// no article structure.
	NoisePatterns []*regexp.Regexp

	// GenericSectionHeaders are headers rejected when they appear in
	// isolation.
	GenericSectionHeaders map[string]bool

	// FAQTitles are exact normalized headers recognized as FAQ section
	// titles.
	FAQTitles map[string]bool

	// LowSignalSubtopics are subtopic headers never reported as gaps.
	LowSignalSubtopics map[string]bool

	// GapListSkip are list items dropped from formatted gap lists.
	GapListSkip map[string]bool

	// SectionPointSkip are candidate key points dropped as too generic.
	SectionPointSkip map[string]bool

	// ThemeKeywords maps a theme flag to the substrings that raise it.
	ThemeKeywords map[string][]string

	// ThemeLabels maps a theme flag to its human-readable label.
	ThemeLabels map[string]string

	// SignalLabels maps a fallback key-point label to the signal words
	// that select it.
	SignalLabels []SignalLabel
}

// SignalLabel pairs a human-readable key-point label with the signal
// words that select it. Order matters: labels are tried in sequence.
type SignalLabel struct {
	Label   string
	Signals []string
}

var noisePatternSource = []string{
	`\blooking to rent\b`, `\blooking to buy\b`, `\bexplore all available\b`, `\bview all\b`,
	`\bfind (a|an) (home|property|apartment|villa)\b`, `\bbrowse\b`, `\bsearch\b`,
	`\bproperties for (rent|sale)\b`, `\bavailable (rental|properties)\b`, `\bget in touch\b`,
	`\bcontact (us|agent)\b`, `\bcall (us|now)\b`, `\bwhatsapp\b`, `\benquire\b`,
	`\binquire\b`, `\bbook a viewing\b`,
	`\bshare\b`, `\bshare this\b`, `\bfollow us\b`, `\blike\b`, `\bsubscribe\b`,
	`\bnewsletter\b`, `\bmailing list\b`, `\bjoin (our|the) (email )?list\b`,
	`\bemail updates\b`, `\bstay updated\b`, `\bsign up\b`, `\blogin\b`, `\bregister\b`,
	`\brelated (posts|articles)\b`, `\byou may also like\b`, `\brecommended\b`,
	`\bpopular posts\b`, `\bmore articles\b`, `\blatest (blogs|blog|podcasts|podcast|insights)\b`,
	`\breal estate insights\b`,
	`\btable of contents\b`, `\bcontents\b`, `\bback to top\b`, `\bread more\b`,
	`\bnext\b`, `\bprevious\b`, `\bcomments\b`,
	`\bplease stand by\b`, `\bloading\b`, `\bjust a moment\b`,
}

// DefaultLexicon returns the built-in heuristic vocabulary.
func DefaultLexicon() *Lexicon {
	patterns := make([]*regexp.Regexp, 0, len(noisePatternSource))
	for _, p := range noisePatternSource {
		patterns = append(patterns, regexp.MustCompile(p))
	}

	return &Lexicon{
		Stop: toSet(
			"the", "and", "for", "with", "that", "this", "from", "you", "your", "are", "was", "were", "will", "have", "has", "had",
			"but", "not", "can", "may", "more", "most", "into", "than", "then", "they", "them", "their", "our", "out", "about",
			"also", "over", "under", "between", "within", "near", "where", "when", "what", "why", "how", "who", "which",
			"a", "an", "to", "of", "in", "on", "at", "as", "is", "it", "be", "or", "by", "we", "i", "us",
		),
		GenericTokens: toSet(
			"section", "topic", "topics", "detail", "details", "overview",
			"introduction", "intro", "guide", "key", "takeaway", "takeaways",
			"information", "info", "top", "best", "popular", "main", "latest",
		),
		FAQFillerTokens: toSet(
			"faq", "faqs", "question", "questions", "attend", "attendance", "visitor", "visitors",
			"visit", "visiting",
		),
		TopicAliases: map[string][]string{
			"place": {"place", "places", "venue", "venues", "spot", "spots", "destination", "destinations", "location", "locations"},
			"event": {"event", "events", "celebrate", "celebration", "festival", "festivals", "activity", "activities", "entertainment", "happening", "happenings"},
			"tip":   {"tip", "tips", "practical", "advice", "suggestion", "suggestions"},
			"pros":  {"pro", "pros", "advantage", "advantages", "benefit", "benefits", "positive", "positives"},
			"cons":  {"con", "cons", "disadvantage", "disadvantages", "challenge", "challenges", "drawback", "drawbacks", "consider", "considerations"},
		},
		SubtopicAliases: map[string][]string{
			"ticket":   {"ticket", "tickets", "entry", "entries", "admission", "price", "pricing", "cost", "fee", "fees"},
			"timing":   {"timing", "timings", "time", "times", "hour", "hours", "schedule", "opening", "closing"},
			"location": {"location", "locations", "locat", "address", "where", "venue", "map"},
		},
		OppositeGroups: [][2][]string{
			{
				{"pro", "pros", "advantage", "advantages", "benefit", "benefits", "positive", "positives"},
				{"con", "cons", "disadvantage", "disadvantages", "challenge", "challenges", "drawback", "drawbacks", "negative", "negatives"},
			},
		},
		NoisePatterns:         patterns,
		GenericSectionHeaders: toSet("introduction", "overview"),
		FAQTitles:             toSet("faq", "faqs", "frequently asked questions", "frequently asked question"),
		LowSignalSubtopics: toSet(
			"location", "contact", "contacts", "phone", "telephone", "website", "web site",
			"address", "map", "directions",
		),
		GapListSkip: toSet(
			"other", "other topics", "other faq topics", "faq topics", "other faq topic",
			"other faq", "general", "misc", "miscellaneous",
		),
		SectionPointSkip: toSet(
			"other", "general", "overview", "summary", "conclusion", "faqs", "faq",
			"introduction", "read more", "next", "previous",
		),
		ThemeKeywords: map[string][]string{
			"transport":       {"metro", "public transport", "commute", "connectivity", "access", "highway", "roads", "bus", "train"},
			"traffic_parking": {"parking", "traffic", "congestion", "rush hour", "gridlock"},
			"cost":            {"cost", "price", "pricing", "expensive", "afford", "budget", "rent", "fees", "charges"},
			"lifestyle":       {"restaurants", "cafes", "nightlife", "vibe", "atmosphere", "social", "entertainment"},
			"daily_life":      {"schools", "nursery", "kids", "family", "clinic", "hospital", "supermarket", "groceries", "pharmacy"},
			"safety":          {"safe", "safety", "security", "crime"},
			"decision_frame":  {"pros", "cons", "advantages", "disadvantages", "weigh", "consider", "should you", "worth it"},
			"comparison":      {"compare", "comparison", "vs ", "versus", "alternative", "similar to"},
		},
		ThemeLabels: map[string]string{
			"transport":       "commute & connectivity",
			"traffic_parking": "traffic/parking realities",
			"cost":            "cost considerations",
			"lifestyle":       "lifestyle & vibe",
			"daily_life":      "day-to-day convenience",
			"safety":          "safety angle",
			"decision_frame":  "decision framing",
			"comparison":      "comparison context",
		},
		SignalLabels: []SignalLabel{
			{"Location & connectivity", []string{"location", "connectivity", "access", "metro", "public transport", "bus", "road", "highway"}},
			{"Property types & ownership", []string{"apartment", "villa", "townhouse", "penthouse", "property type", "freehold", "leasehold", "ownership"}},
			{"Costs & service charges", []string{"cost", "price", "pricing", "expensive", "afford", "budget", "fee", "fees", "service charge", "maintenance"}},
			{"Amenities & facilities", []string{"amenities", "facility", "facilities", "gym", "pool", "park", "beach", "shopping", "mall", "recreational"}},
			{"Lifestyle & entertainment", []string{"lifestyle", "restaurants", "cafes", "nightlife", "entertainment", "vibe", "atmosphere"}},
			{"Schools & healthcare", []string{"school", "nursery", "education", "clinic", "hospital", "healthcare", "medical"}},
			{"Investment potential", []string{"investment", "investor", "roi", "yield", "capital appreciation", "returns", "demand"}},
			{"Pros & cons", []string{"pros", "cons", "advantages", "disadvantages", "benefits", "challenges"}},
			{"Safety & security", []string{"safety", "security", "safe", "crime"}},
			{"Parking & traffic", []string{"parking", "traffic", "congestion", "rush hour"}},
		},
	}
}

func toSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
