/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package flames

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareText(t *testing.T) {
	t.Parallel()

	rel, ok := Describe(Love)
	require.True(t, ok)

	assert.Equal(t,
		"🔥 FLAMES Result 🔥\n\nAmit & Sara\nResult: Love\n\nLove is in the air! 💕\n\nTry FLAMES yourself! 💕",
		ShareText("Amit", "Sara", rel))

	ws := WebShare("Amit", "Sara", rel, "https://example.com/result")
	assert.Equal(t, "FLAMES Result: Love", ws.Title)
	assert.Equal(t, "Amit & Sara - Love\n\nLove is in the air! 💕", ws.Text)
	assert.Equal(t, "https://example.com/result", ws.URL)
}

func TestShareLinks(t *testing.T) {
	t.Parallel()

	rel, _ := Describe(Friend)
	links := ShareLinks("Amit", "Sara", rel, "https://example.com/?a=1")
	require.Len(t, links, 3)

	assert.Equal(t, "WhatsApp", links[0].Name)
	assert.Equal(t, "Twitter", links[1].Name)
	assert.Equal(t, "Facebook", links[2].Name)

	for _, l := range links {
		assert.NotContains(t, l.URL, " ")
		assert.NotContains(t, l.URL, "+")
		assert.Contains(t, l.URL, "Amit%20%26%20Sara")
	}

	assert.True(t, strings.HasPrefix(links[1].URL, "https://twitter.com/intent/tweet?text="))
	assert.True(t, strings.HasSuffix(links[1].URL, "&url=https%3A%2F%2Fexample.com%2F%3Fa%3D1"))
}

func TestExportFileName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "flames-result-Amit-Sara.png", ExportFileName("Amit", "Sara"))
}
