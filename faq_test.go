package gapscan_test

import (
	"testing"

	"github.com/fwojciec/gapscan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLooksLikeQuestion(t *testing.T) {
	t.Parallel()

	t.Run("question-shaped strings", func(t *testing.T) {
		t.Parallel()
		assert.True(t, gapscan.LooksLikeQuestion("How much are tickets?"))
		assert.True(t, gapscan.LooksLikeQuestion("What is the best area"))
		assert.True(t, gapscan.LooksLikeQuestion("Is it worth visiting"))
	})

	t.Run("rejects non-questions and promo phrasing", func(t *testing.T) {
		t.Parallel()
		assert.False(t, gapscan.LooksLikeQuestion("Great places to visit"))
		assert.False(t, gapscan.LooksLikeQuestion("Subscribe to our newsletter?"))
		assert.False(t, gapscan.LooksLikeQuestion("Hi?"))
		assert.False(t, gapscan.LooksLikeQuestion(""))
	})
}

func TestNormalizeQuestion(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "How much are tickets?", gapscan.NormalizeQuestion("1. How much are tickets?"))
	assert.Equal(t, "What to expect", gapscan.NormalizeQuestion("- [What to expect](https://example.com)"))
	assert.Equal(t, "Is it safe?", gapscan.NormalizeQuestion("  Is   it safe?  "))
}

func TestQuestionTopic(t *testing.T) {
	t.Parallel()

	t.Run("strips interrogative scaffolding", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Ticket prices", gapscan.QuestionTopic("What are the ticket prices?"))
		assert.Equal(t, "Safe at night", gapscan.QuestionTopic("Is it safe at night?"))
	})

	t.Run("falls back to the bare question when too short", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "What is it", gapscan.QuestionTopic("What is it?"))
	})

	t.Run("empty input yields empty topic", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", gapscan.QuestionTopic("  "))
	})
}

func TestMergeFAQPairs(t *testing.T) {
	t.Parallel()

	t.Run("longer answer wins on duplicate questions", func(t *testing.T) {
		t.Parallel()
		merged := gapscan.MergeFAQPairs([]gapscan.FAQPair{
			{Question: "How much are tickets?", Answer: "AED 50."},
			{Question: "Is parking free?", Answer: ""},
			{Question: "how much are tickets", Answer: "Tickets cost AED 50 for adults and AED 20 for children."},
		})
		require.Len(t, merged, 2)
		assert.Equal(t, "How much are tickets?", merged[0].Question)
		assert.Equal(t, "Tickets cost AED 50 for adults and AED 20 for children.", merged[0].Answer)
		assert.Equal(t, "Is parking free?", merged[1].Question)
	})

	t.Run("drops empty questions", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, gapscan.MergeFAQPairs([]gapscan.FAQPair{{Question: "  ", Answer: "x"}}))
	})
}

func TestQuestionsEquivalent(t *testing.T) {
	t.Parallel()

	lex := gapscan.DefaultLexicon()
	f := gapscan.NewFAQMatcher(lex, gapscan.NewMatcher(lex, gapscan.DefaultThresholds()))

	t.Run("equivalent phrasings", func(t *testing.T) {
		t.Parallel()
		assert.True(t, f.QuestionsEquivalent("How much are tickets?", "how much are tickets"))
		assert.True(t, f.QuestionsEquivalent("What are the ticket prices?", "Ticket prices?"))
		assert.True(t, f.QuestionsEquivalent("What are the ticket prices?", "Are the ticket prices high?"))
	})

	t.Run("different questions", func(t *testing.T) {
		t.Parallel()
		assert.False(t, f.QuestionsEquivalent("How much are tickets?", "Is parking available?"))
		assert.False(t, f.QuestionsEquivalent("", "Is parking available?"))
	})
}

func TestValidFAQQuestion(t *testing.T) {
	t.Parallel()

	assert.True(t, gapscan.ValidFAQQuestion("How much are tickets?"))
	assert.False(t, gapscan.ValidFAQQuestion("Contact us today?"))
	assert.False(t, gapscan.ValidFAQQuestion("Why?"))
	assert.False(t, gapscan.ValidFAQQuestion("Opening hours and location"))
}

func TestFAQHeadingNodes(t *testing.T) {
	t.Parallel()

	lex := gapscan.DefaultLexicon()
	nodes := []*gapscan.HeadingNode{
		{Level: 1, Header: "City Guide", Children: []*gapscan.HeadingNode{
			{Level: 2, Header: "Cost of Living"},
			{Level: 2, Header: "Frequently Asked Questions", Children: []*gapscan.HeadingNode{
				{Level: 3, Header: "How much are tickets?"},
			}},
		}},
	}

	faqs := gapscan.FAQHeadingNodes(lex, nodes)
	require.Len(t, faqs, 1)
	assert.Equal(t, "Frequently Asked Questions", faqs[0].Header)
}

func TestQuestionsFromNode(t *testing.T) {
	t.Parallel()

	lex := gapscan.DefaultLexicon()

	t.Run("child question headings come first", func(t *testing.T) {
		t.Parallel()
		nodes := []*gapscan.HeadingNode{
			{Level: 2, Header: "FAQs", Children: []*gapscan.HeadingNode{
				{Level: 3, Header: "How much are tickets?"},
				{Level: 3, Header: "Is parking free?"},
				{Level: 3, Header: "Getting There"},
			}},
		}
		faq := gapscan.FAQHeadingNodes(lex, nodes)[0]
		qs := gapscan.QuestionsFromNode(faq)
		assert.Equal(t, []string{"How much are tickets?", "Is parking free?"}, qs)
	})

	t.Run("body text questions backfill sparse sections", func(t *testing.T) {
		t.Parallel()
		nodes := []*gapscan.HeadingNode{
			{Level: 2, Header: "FAQs", Content: "What time does it open? The gates open at 9am. Is parking free? Yes."},
		}
		faq := gapscan.FAQHeadingNodes(lex, nodes)[0]
		qs := gapscan.QuestionsFromNode(faq)
		assert.Contains(t, qs, "What time does it open?")
		assert.Contains(t, qs, "Is parking free?")
		assert.NotContains(t, qs, "The gates open at 9am.")
	})
}

func TestPairsFromNodes(t *testing.T) {
	t.Parallel()

	lex := gapscan.DefaultLexicon()
	nodes := []*gapscan.HeadingNode{
		{Level: 2, Header: "Frequently Asked Questions", Children: []*gapscan.HeadingNode{
			{Level: 3, Header: "How much are tickets?", Content: "Tickets cost AED 50."},
			{Level: 3, Header: "Not a question"},
		}},
		{Level: 2, Header: "Cost of Living", Children: []*gapscan.HeadingNode{
			{Level: 3, Header: "Is rent high?", Content: "Outside an FAQ section."},
		}},
	}

	pairs := gapscan.PairsFromNodes(lex, nodes)
	require.Len(t, pairs, 1)
	assert.Equal(t, "How much are tickets?", pairs[0].Question)
	assert.Equal(t, "Tickets cost AED 50.", pairs[0].Answer)
}
