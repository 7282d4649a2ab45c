/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package flames

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Name holds a player-supplied name in both of its forms.
type Name struct {
	// Original is the trimmed input, used for display.
	Original string `json:"original"`
	// Normalized is lowercased with all whitespace removed. No other
	// folding is applied, so "ＡＢ" and "ab" stay distinct.
	Normalized string `json:"normalized"`
	// Source maps each rune of Normalized to the rune offset in Original
	// it was produced from.
	Source []int `json:"source"`
}

// NewName trims and normalizes s. It returns ErrEmptyName if nothing
// but whitespace was supplied.
func NewName(s string) (Name, error) {
	original := strings.TrimSpace(s)
	if original == "" {
		return Name{}, ErrEmptyName
	}

	lower := cases.Lower(language.Und)

	// The whole name is lowercased at once so context such as a
	// word-final sigma is kept. Each rune on its own tells how many of
	// the lowered runes it produced, e.g. 'İ' gives two.
	folded := []rune(lower.String(original))

	var b strings.Builder
	source := make([]int, 0, len(folded))
	pos := 0

	for i, r := range []rune(original) {
		out := []rune(lower.String(string(r)))
		if pos+len(out) <= len(folded) {
			out = folded[pos : pos+len(out)]
		}
		pos += len(out)

		for _, f := range out {
			if unicode.IsSpace(f) {
				continue
			}
			b.WriteRune(f)
			source = append(source, i)
		}
	}

	return Name{
		Original:   original,
		Normalized: b.String(),
		Source:     source,
	}, nil
}
