package gapscan_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/gapscan"
	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b c", gapscan.CleanText("  a\t b \n\n c  "))
	assert.Equal(t, "", gapscan.CleanText(" \n\t "))
}

func TestNormalizeHeader(t *testing.T) {
	t.Parallel()

	t.Run("lowercases and strips punctuation", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "ticket prices fees", gapscan.NormalizeHeader("Ticket Prices & Fees!"))
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()
		inputs := []string{"Ticket Prices & Fees!", "  FAQs  ", "Cost of Living (2026)"}
		for _, in := range inputs {
			once := gapscan.NormalizeHeader(in)
			assert.Equal(t, once, gapscan.NormalizeHeader(once))
		}
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", gapscan.NormalizeHeader("  !!  "))
	})
}

func TestStem(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "city", gapscan.Stem("cities"))
	assert.Equal(t, "amenity", gapscan.Stem("Amenities"))
	assert.Equal(t, "tip", gapscan.Stem("tips"))
	assert.Equal(t, "park", gapscan.Stem("parks"))
	assert.Equal(t, "bus", gapscan.Stem("bus"))
	assert.Equal(t, "tie", gapscan.Stem("ties"))
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"ticket", "price", "fee"}, gapscan.Tokenize("Ticket Prices & Fees"))
	assert.Empty(t, gapscan.Tokenize("  !! "))
}

func TestCanonicalToken(t *testing.T) {
	t.Parallel()

	lex := gapscan.DefaultLexicon()

	assert.Equal(t, "place", lex.CanonicalToken("locations"))
	assert.Equal(t, "place", lex.CanonicalToken("venue"))
	assert.Equal(t, "pro", lex.CanonicalToken("advantages"))
	assert.Equal(t, "con", lex.CanonicalToken("drawbacks"))
	assert.Equal(t, "parking", lex.CanonicalToken("parking"))
}

func TestAliases(t *testing.T) {
	t.Parallel()

	lex := gapscan.DefaultLexicon()

	t.Run("alias sets are symmetric and closed", func(t *testing.T) {
		t.Parallel()
		forTicket := lex.Aliases("ticket")
		assert.True(t, forTicket["fee"])
		assert.True(t, forTicket["price"])
		assert.True(t, forTicket["entry"])

		forFees := lex.Aliases("fees")
		assert.True(t, forFees["ticket"])
		assert.True(t, forFees["admission"])
	})

	t.Run("unknown token maps to itself only", func(t *testing.T) {
		t.Parallel()
		got := lex.Aliases("marina")
		assert.Equal(t, map[string]bool{"marina": true}, got)
	})
}

func TestCoreTokens(t *testing.T) {
	t.Parallel()

	lex := gapscan.DefaultLexicon()

	assert.Equal(t, []string{"restaurant"}, lex.CoreTokens("A Guide to the Best Restaurants"))
	assert.Equal(t, []string{"place", "connectivity"}, lex.CoreTokens("Location & Connectivity"))
	assert.Empty(t, lex.CoreTokens("Overview"))
}

func TestFAQCoreTokens(t *testing.T) {
	t.Parallel()

	lex := gapscan.DefaultLexicon()

	assert.Equal(t, []string{"ticket", "price"}, lex.FAQCoreTokens("What are the ticket prices?"))
	assert.NotContains(t, lex.FAQCoreTokens("Is visiting worth it for visitors?"), "visitor")
}

func TestIsFAQHeader(t *testing.T) {
	t.Parallel()

	lex := gapscan.DefaultLexicon()

	assert.True(t, lex.IsFAQHeader("Frequently Asked Questions"))
	assert.True(t, lex.IsFAQHeader("FAQs"))
	assert.True(t, lex.IsFAQHeader("Dubai Marina FAQ Guide"))
	assert.False(t, lex.IsFAQHeader("Pricing"))
	assert.False(t, lex.IsFAQHeader(""))
}

func TestIsNoiseHeader(t *testing.T) {
	t.Parallel()

	lex := gapscan.DefaultLexicon()

	t.Run("rejects decorative and navigational headers", func(t *testing.T) {
		t.Parallel()
		assert.True(t, lex.IsNoiseHeader(""))
		assert.True(t, lex.IsNoiseHeader("abc"))
		assert.True(t, lex.IsNoiseHeader("Overview"))
		assert.True(t, lex.IsNoiseHeader("Read More"))
		assert.True(t, lex.IsNoiseHeader("Subscribe to our newsletter"))
		assert.True(t, lex.IsNoiseHeader("*** !!! ***"))
		assert.True(t, lex.IsNoiseHeader(strings.Repeat("very long header ", 8)))
	})

	t.Run("keeps article structure", func(t *testing.T) {
		t.Parallel()
		assert.False(t, lex.IsNoiseHeader("Cost of Living"))
		assert.False(t, lex.IsNoiseHeader("Ticket Prices"))
	})

	t.Run("FAQ titles are exempt", func(t *testing.T) {
		t.Parallel()
		assert.False(t, lex.IsNoiseHeader("FAQ"))
		assert.False(t, lex.IsNoiseHeader("FAQs"))
	})
}

func TestIsLowSignalSubtopic(t *testing.T) {
	t.Parallel()

	lex := gapscan.DefaultLexicon()

	assert.True(t, lex.IsLowSignalSubtopic("Location"))
	assert.True(t, lex.IsLowSignalSubtopic("Contact"))
	assert.True(t, lex.IsLowSignalSubtopic(""))
	assert.False(t, lex.IsLowSignalSubtopic("Ticket Prices"))
	assert.False(t, lex.IsLowSignalSubtopic("Location and Transport Links"))
}
