package gapscan_test

import (
	"testing"

	"github.com/fwojciec/gapscan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionNodes(t *testing.T) {
	t.Parallel()

	lex := gapscan.DefaultLexicon()

	t.Run("projects levels 2-4 with parent tracking", func(t *testing.T) {
		t.Parallel()
		nodes := []*gapscan.HeadingNode{
			{Level: 1, Header: "City Guide", Children: []*gapscan.HeadingNode{
				{Level: 2, Header: "Cost of Living", Content: "Rent is high.", Children: []*gapscan.HeadingNode{
					{Level: 3, Header: "Utility Bills", Content: "Around AED 600."},
				}},
			}},
		}

		secs := gapscan.SectionNodes(lex, nodes, 2, 3, 4)
		require.Len(t, secs, 2)
		assert.Equal(t, "Cost of Living", secs[0].Header)
		assert.Equal(t, "Cost of Living", secs[0].ParentH2)
		assert.Equal(t, "Utility Bills", secs[1].Header)
		assert.Equal(t, "Cost of Living", secs[1].ParentH2)
	})

	t.Run("FAQ sections and their descendants are excluded", func(t *testing.T) {
		t.Parallel()
		nodes := []*gapscan.HeadingNode{
			{Level: 2, Header: "Frequently Asked Questions", Children: []*gapscan.HeadingNode{
				{Level: 3, Header: "Ticket Desk Locations", Content: "Not a structural subtopic."},
			}},
			{Level: 2, Header: "Getting Around"},
		}

		secs := gapscan.SectionNodes(lex, nodes, 2, 3, 4)
		require.Len(t, secs, 1)
		assert.Equal(t, "Getting Around", secs[0].Header)
	})

	t.Run("question-shaped subtopics are excluded outside FAQ sections", func(t *testing.T) {
		t.Parallel()
		nodes := []*gapscan.HeadingNode{
			{Level: 2, Header: "Cost of Living", Children: []*gapscan.HeadingNode{
				{Level: 3, Header: "Is rent high?"},
				{Level: 3, Header: "Utility Bills"},
			}},
		}

		secs := gapscan.SectionNodes(lex, nodes, 2, 3, 4)
		headers := make([]string, 0, len(secs))
		for _, s := range secs {
			headers = append(headers, s.Header)
		}
		assert.Equal(t, []string{"Cost of Living", "Utility Bills"}, headers)
	})

	t.Run("noise headers break parent chains", func(t *testing.T) {
		t.Parallel()
		nodes := []*gapscan.HeadingNode{
			{Level: 2, Header: "Read More", Children: []*gapscan.HeadingNode{
				{Level: 3, Header: "Utility Bills"},
			}},
		}

		secs := gapscan.SectionNodes(lex, nodes, 2, 3, 4)
		require.Len(t, secs, 1)
		assert.Equal(t, "Utility Bills", secs[0].Header)
		assert.Equal(t, "", secs[0].ParentH2)
	})

	t.Run("duplicate headers keep the first occurrence", func(t *testing.T) {
		t.Parallel()
		nodes := []*gapscan.HeadingNode{
			{Level: 2, Header: "Cost of Living", Content: "first"},
			{Level: 2, Header: "cost of living!", Content: "second"},
		}

		secs := gapscan.SectionNodes(lex, nodes, 2, 3, 4)
		require.Len(t, secs, 1)
		assert.Equal(t, "first", secs[0].Content)
	})

	t.Run("trailing label colons are stripped", func(t *testing.T) {
		t.Parallel()
		nodes := []*gapscan.HeadingNode{
			{Level: 2, Header: "Ticket Prices:"},
		}

		secs := gapscan.SectionNodes(lex, nodes, 2, 3, 4)
		require.Len(t, secs, 1)
		assert.Equal(t, "Ticket Prices", secs[0].Header)
	})
}

func TestCoverageCorpus(t *testing.T) {
	t.Parallel()

	doc := &gapscan.Document{ExtractedText: "Full article text."}
	nodes := []*gapscan.HeadingNode{
		{Level: 2, Header: "Cost of Living", Content: "Rent is high."},
	}

	got := gapscan.CoverageCorpus(doc, nodes)
	assert.Equal(t, "Full article text. Cost of Living Rent is high.", got)

	assert.Equal(t, "", gapscan.CoverageCorpus(nil, nil))
}
