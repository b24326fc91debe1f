package gapscan_test

import (
	"testing"

	"github.com/fwojciec/gapscan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentValidate(t *testing.T) {
	t.Parallel()

	t.Run("usable document", func(t *testing.T) {
		t.Parallel()
		doc := &gapscan.Document{Success: true, ExtractedText: "article text"}
		assert.NoError(t, doc.Validate())
	})

	t.Run("failed fetch", func(t *testing.T) {
		t.Parallel()
		doc := &gapscan.Document{Success: false, FailureReason: "blocked_or_no_content"}
		err := doc.Validate()
		require.Error(t, err)
		assert.Equal(t, gapscan.EUNAVAILABLE, gapscan.ErrorCode(err))
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()
		doc := &gapscan.Document{Success: true}
		err := doc.Validate()
		require.Error(t, err)
		assert.Equal(t, gapscan.EINVALID, gapscan.ErrorCode(err))
	})
}

func TestLooksBlocked(t *testing.T) {
	t.Parallel()

	assert.True(t, gapscan.LooksBlocked("Just a moment... Checking your browser"))
	assert.True(t, gapscan.LooksBlocked("403 Forbidden"))
	assert.True(t, gapscan.LooksBlocked("Please complete the CAPTCHA to continue"))
	assert.False(t, gapscan.LooksBlocked("Dubai Marina is a waterfront district."))
	assert.False(t, gapscan.LooksBlocked(""))
}
