/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package flames

import (
	"fmt"
	"net/url"
	"strings"
)

// ShareLink is an intent URL for posting a result to a social network.
type ShareLink struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
	URL  string `json:"url"`
}

// WebSharePayload mirrors the fields of the browser Web Share API.
type WebSharePayload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// ShareText is the text copied to the clipboard.
func ShareText(nameA, nameB string, rel Relationship) string {
	return fmt.Sprintf("🔥 FLAMES Result 🔥\n\n%s & %s\nResult: %s\n\n%s\n\nTry FLAMES yourself! 💕",
		nameA, nameB, rel.Name, rel.Message)
}

// WebShare is handed to navigator.share by the browser client.
func WebShare(nameA, nameB string, rel Relationship, pageURL string) WebSharePayload {
	return WebSharePayload{
		Title: "FLAMES Result: " + rel.Name,
		Text:  fmt.Sprintf("%s & %s - %s\n\n%s", nameA, nameB, rel.Name, rel.Message),
		URL:   pageURL,
	}
}

// ShareLinks builds the fallback share targets offered when Web Share is
// unavailable.
func ShareLinks(nameA, nameB string, rel Relationship, pageURL string) []ShareLink {
	text := escapeComponent(fmt.Sprintf("%s & %s - %s\n\n%s\n\nTry FLAMES yourself!",
		nameA, nameB, rel.Name, rel.Message))
	u := escapeComponent(pageURL)

	return []ShareLink{
		{
			Name: "WhatsApp",
			Icon: "💬",
			URL:  "https://wa.me/?text=" + text + "%20" + u,
		},
		{
			Name: "Twitter",
			Icon: "🐦",
			URL:  "https://twitter.com/intent/tweet?text=" + text + "&url=" + u,
		},
		{
			Name: "Facebook",
			Icon: "📘",
			URL:  "https://www.facebook.com/sharer/sharer.php?u=" + u + "&quote=" + text,
		},
	}
}

// ExportFileName is the download name for a rendered result card.
func ExportFileName(nameA, nameB string) string {
	return fmt.Sprintf("flames-result-%s-%s.png", nameA, nameB)
}

// escapeComponent query-escapes s with spaces as %20, not '+'.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
