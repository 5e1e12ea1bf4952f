package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataURL(t *testing.T) {
	mimeType, data, err := parseDataURL("data:image/png;base64,AAAA")
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, "AAAA", data)

	mimeType, data, err = parseDataURL("AAAA")
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType, "bare payload assumes png")
	assert.Equal(t, "AAAA", data)

	_, _, err = parseDataURL("")
	assert.Error(t, err)

	_, _, err = parseDataURL("data:image/png;base64")
	assert.Error(t, err)
}

func TestSplitByBytes(t *testing.T) {
	assert.Equal(t, []string{"short"}, splitByBytes("short", 10))

	parts := splitByBytes(strings.Repeat("a", 25), 10)
	assert.Equal(t, []string{"aaaaaaaaaa", "aaaaaaaaaa", "aaaaa"}, parts)

	// Multi-byte runes never split mid-character.
	parts = splitByBytes(strings.Repeat("é", 6), 5)
	for _, p := range parts {
		assert.True(t, len(p)%2 == 0)
	}
	assert.Equal(t, strings.Repeat("é", 6), strings.Join(parts, ""))
}

func TestTruncateByBytes(t *testing.T) {
	assert.Equal(t, "short", truncateByBytes("short", 10))
	assert.Equal(t, "aaaaa", truncateByBytes(strings.Repeat("a", 20), 5))
	assert.Equal(t, "éé", truncateByBytes("ééé", 5))
}
