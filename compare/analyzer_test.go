package compare_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/gapscan"
	"github.com/fwojciec/gapscan/compare"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalyzer() *compare.Analyzer {
	return compare.NewAnalyzer(gapscan.DefaultLexicon(), gapscan.DefaultThresholds(), nil)
}

func node(level int, header, content string, children ...*gapscan.HeadingNode) *gapscan.HeadingNode {
	return &gapscan.HeadingNode{Level: level, Header: header, Content: content, Children: children}
}

func input(url string, nodes ...*gapscan.HeadingNode) compare.Input {
	return compare.Input{
		Doc:   &gapscan.Document{Success: true, SourceLabel: "direct"},
		Nodes: nodes,
		URL:   url,
	}
}

func TestAnalyzerRows(t *testing.T) {
	t.Parallel()

	t.Run("missing section and FAQ gaps", func(t *testing.T) {
		t.Parallel()

		comp := input("https://competitor.com/guide",
			node(2, "Location", "Its location next to the marina gives easy access to the promenade."),
			node(2, "Pros", "The main advantages are the quiet waterfront views."),
			node(2, "Cons", "Rush hour congestion is a real problem here."),
			node(2, "FAQs", "",
				node(3, "How much are tickets?", "Tickets cost AED 50 per adult."),
				node(3, "Is parking available?", "Yes, there is free parking on site."),
			),
		)
		target := input("https://target.com/guide",
			node(2, "Location", "Its location next to the marina gives easy access to the promenade."),
			node(2, "Advantages", "The main advantages are the quiet waterfront views."),
		)

		rows := newAnalyzer().Rows(target, comp)

		require.Len(t, rows, 2)

		assert.Equal(t, "Cons", rows[0].Header)
		assert.NotEmpty(t, rows[0].Description)
		assert.Contains(t, rows[0].Source, "competitor.com/guide")
		assert.Contains(t, rows[0].Source, "Competitor")

		faq := rows[1]
		assert.Equal(t, "FAQs", faq.Header)
		assert.Contains(t, faq.Description, "Important missing FAQ questions:")
		assert.Contains(t, faq.Description, "How much are tickets?")
		assert.Contains(t, faq.Description, "Is parking available?")
	})

	t.Run("identical documents yield no rows", func(t *testing.T) {
		t.Parallel()

		nodes := func() []*gapscan.HeadingNode {
			return []*gapscan.HeadingNode{
				node(2, "Living in the Area", "Daily errands are simple thanks to the shops downstairs."),
				node(2, "Weather Through the Year", "Summers are humid while winters stay mild and pleasant."),
				node(2, "FAQs", "",
					node(3, "Is it family friendly?", "Yes, there are three schools nearby."),
				),
			}
		}

		rows := newAnalyzer().Rows(input("https://target.com/a", nodes()...), input("https://competitor.com/b", nodes()...))

		assert.Empty(t, rows)
	})

	t.Run("subtopic covered through alias table emits no row", func(t *testing.T) {
		t.Parallel()

		comp := input("https://competitor.com/garden",
			node(2, "Visiting the Garden", "Plan your trip in advance.",
				node(3, "Ticket Prices", "Adult tickets cost 95 AED at the gate."),
			),
		)
		target := input("https://target.com/garden",
			node(2, "Visiting the Garden", "Plan ahead before you go. Entry fees is AED 50 for adults at the gate."),
		)

		rows := newAnalyzer().Rows(target, comp)

		for _, r := range rows {
			assert.NotContains(t, r.Description, "Ticket Prices")
		}
	})

	t.Run("matched section with longer competitor body reports depth gap", func(t *testing.T) {
		t.Parallel()

		// Same section on both sides, but the competitor keeps going with
		// transport and parking material the target never touches. Every
		// extracted key point is already covered by the shared body, so
		// the row must fall through to the depth note.
		body := "The tram loops the district every ten minutes and taxis wait outside the main gate."
		comp := input("https://competitor.com/transit",
			node(2, "Getting Around", body+" You can take the metro here and parking is easy but the traffic and congestion can be bad at rush hour."),
		)
		target := input("https://target.com/transit",
			node(2, "Getting Around", body),
		)

		rows := newAnalyzer().Rows(target, comp)

		require.Len(t, rows, 1)
		assert.Equal(t, "Getting Around", rows[0].Header)
		assert.Contains(t, rows[0].Description, "Missing depth on:")
		assert.Contains(t, rows[0].Description, "commute & connectivity")
		assert.NotContains(t, rows[0].Description, "Important missing points:")
	})

	t.Run("orphan subtopic under a noise heading becomes its own row", func(t *testing.T) {
		t.Parallel()

		comp := input("https://competitor.com/area",
			node(2, "Introduction", "Welcome to the area.",
				node(3, "School Catchment Zones", "Families check the school catchment zones before they commit to a lease."),
			),
		)
		target := input("https://target.com/area",
			node(2, "Dining Scene", "Cafes line the boulevard with outdoor seating."),
		)

		// The noise H2 never becomes a section, so its child has no
		// surviving parent and is matched on its own.
		rows := newAnalyzer().Rows(target, comp)

		require.Len(t, rows, 1)
		assert.Equal(t, "School Catchment Zones", rows[0].Header)
		assert.Contains(t, rows[0].Description, "Add this header with")
	})

	t.Run("FAQ descendants never become orphan sections", func(t *testing.T) {
		t.Parallel()

		comp := input("https://competitor.com/area",
			node(2, "FAQs", "",
				node(3, "Getting Around Without a Car", "The tram loops the district every ten minutes."),
			),
		)
		target := input("https://target.com/area",
			node(2, "Overview", "A quiet residential district near the coast."),
		)

		rows := newAnalyzer().Rows(target, comp)

		for _, r := range rows {
			assert.NotEqual(t, "Getting Around Without a Car", r.Header)
		}
	})

	t.Run("whole-article coverage suppresses an unmatched section", func(t *testing.T) {
		t.Parallel()

		comp := input("https://competitor.com/area",
			node(2, "School Catchment Zones", "Families compare the school catchment zones before committing to a lease."),
		)
		target := compare.Input{
			Doc: &gapscan.Document{
				Success:       true,
				SourceLabel:   "direct",
				ExtractedText: "Parents here weigh the school catchment zones before choosing a street.",
			},
			Nodes: []*gapscan.HeadingNode{
				node(2, "Dining Scene", "Cafes line the boulevard."),
			},
			URL: "https://target.com/area",
		}

		rows := newAnalyzer().Rows(target, comp)

		assert.Empty(t, rows)
	})

	t.Run("whole-article coverage suppresses an orphan subtopic", func(t *testing.T) {
		t.Parallel()

		comp := input("https://competitor.com/area",
			node(2, "Introduction", "Welcome.",
				node(3, "School Catchment Zones", "Families check the school catchment zones early."),
			),
		)
		target := compare.Input{
			Doc: &gapscan.Document{
				Success:       true,
				SourceLabel:   "direct",
				ExtractedText: "Parents here weigh the school catchment zones before choosing a street.",
			},
			Nodes: []*gapscan.HeadingNode{
				node(2, "Dining Scene", "Cafes line the boulevard."),
			},
			URL: "https://target.com/area",
		}

		rows := newAnalyzer().Rows(target, comp)

		assert.Empty(t, rows)
	})

	t.Run("no competitor sections yields FAQ row only", func(t *testing.T) {
		t.Parallel()

		comp := input("https://competitor.com/faq-only",
			node(2, "Frequently Asked Questions", "",
				node(3, "What is the dress code?", "Smart casual is expected after 7pm."),
				node(3, "Are pets allowed inside?", "Only service animals are admitted."),
			),
		)
		target := input("https://target.com/page",
			node(2, "Overview", "General information about the venue."),
		)

		rows := newAnalyzer().Rows(target, comp)

		require.Len(t, rows, 1)
		assert.Equal(t, "FAQs", rows[0].Header)
		assert.Contains(t, rows[0].Description, "What is the dress code?")
	})

	t.Run("FAQ overflow is summarized", func(t *testing.T) {
		t.Parallel()

		questions := []string{
			"How much are tickets for adults?",
			"Is there parking at the venue?",
			"What are the opening hours today?",
			"Can I bring my own food inside?",
			"Is the venue wheelchair accessible?",
			"Are guided tours available on weekends?",
		}
		children := make([]*gapscan.HeadingNode, len(questions))
		for i, q := range questions {
			children[i] = node(3, q, "An answer with enough detail to count.")
		}
		comp := input("https://competitor.com/faq", node(2, "FAQs", "", children...))
		target := input("https://target.com/page", node(2, "Overview", "Nothing about any of that."))

		rows := newAnalyzer().Rows(target, comp)

		require.Len(t, rows, 1)
		assert.Contains(t, rows[0].Description, "+2 more FAQ gaps")
		assert.Equal(t, 4, strings.Count(rows[0].Description, "?</div>")+strings.Count(rows[0].Description, "? "))
	})

	t.Run("assembly is deterministic", func(t *testing.T) {
		t.Parallel()

		comp := input("https://competitor.com/x",
			node(2, "Cons", "Traffic is heavy during school runs."),
			node(2, "Safety", "The district has round the clock patrols."),
		)
		target := input("https://target.com/x",
			node(2, "Overview", "A short overview paragraph."),
		)

		a := newAnalyzer()
		first := a.Rows(target, comp)
		second := a.Rows(target, comp)

		assert.Equal(t, first, second)
	})
}

func TestAnalyzeAll(t *testing.T) {
	t.Parallel()

	t.Run("merges and dedupes across competitors", func(t *testing.T) {
		t.Parallel()

		comp := input("https://competitor.com/x",
			node(2, "Cons", "Traffic is heavy during school runs."),
		)
		target := input("https://target.com/x",
			node(2, "Overview", "A short overview paragraph."),
		)

		a := newAnalyzer()
		single := a.Rows(target, comp)

		rows, err := a.AnalyzeAll(context.Background(), target, []compare.Input{comp, comp})

		require.NoError(t, err)
		assert.Equal(t, single, rows)
	})

	t.Run("respects cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		a := newAnalyzer()
		_, err := a.AnalyzeAll(ctx, input("https://t.com"), []compare.Input{input("https://c.com")})

		require.Error(t, err)
	})
}

func TestSiteName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Competitor", compare.SiteName("https://www.competitor.com/path"))
	assert.Equal(t, "Bayut", compare.SiteName("https://bayut.com:8080/guide"))
	assert.Equal(t, "Source", compare.SiteName("not a url"))

	link := compare.SourceLink("https://www.competitor.com/guide")
	assert.Contains(t, link, `href="https://www.competitor.com/guide"`)
	assert.Contains(t, link, ">Competitor</a>")
}
