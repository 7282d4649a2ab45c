/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package flames

// Letter is one of the six FLAMES category codes.
type Letter string

const (
	Friend    Letter = "F"
	Love      Letter = "L"
	Affection Letter = "A"
	Marriage  Letter = "M"
	Enemy     Letter = "E"
	Sibling   Letter = "S"
)

// Relationship describes the outcome a surviving letter stands for.
type Relationship struct {
	Letter  Letter `json:"letter"`
	Name    string `json:"name"`
	Message string `json:"message"`
	Icon    string `json:"icon"`
}

var relationships = [...]Relationship{
	{Friend, "Friend", "You two are destined to be great friends!", "🤝"},
	{Love, "Love", "Love is in the air! 💕", "💕"},
	{Affection, "Affection", "There's a special affection between you two!", "💖"},
	{Marriage, "Marriage", "Wedding bells might be ringing! 💒", "💒"},
	{Enemy, "Enemy", "You might face some challenges... 😬", "⚡"},
	{Sibling, "Sibling", "You're like family to each other!", "👨‍👩‍👧‍👦"},
}

// Sequence returns a fresh copy of the FLAMES letters in order.
func Sequence() []Letter {
	seq := make([]Letter, len(relationships))
	for i, r := range relationships {
		seq[i] = r.Letter
	}

	return seq
}

// Relationships returns the descriptor table in FLAMES order.
func Relationships() []Relationship {
	out := make([]Relationship, len(relationships))
	copy(out, relationships[:])

	return out
}

// Describe looks up the descriptor for l.
func Describe(l Letter) (Relationship, bool) {
	for _, r := range relationships {
		if r.Letter == l {
			return r, true
		}
	}

	return Relationship{}, false
}
