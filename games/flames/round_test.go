/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package flames

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		in         string
		original   string
		normalized string
		source     []int
	}{
		{"plain", "Amit", "Amit", "amit", []int{0, 1, 2, 3}},
		{"trims and strips spaces", "  Mary Jane ", "Mary Jane", "maryjane", []int{0, 1, 2, 3, 5, 6, 7, 8}},
		{"tabs are spaces too", "Jo\tAnn", "Jo\tAnn", "joann", []int{0, 1, 3, 4, 5}},
		{"fullwidth letters are kept", "ＡＢ", "ＡＢ", "ａｂ", []int{0, 1}},
		{"ligatures are kept", "ﬁn", "ﬁn", "ﬁn", []int{0, 1}},
		{"word-final sigma", "ΟΔΟΣ", "ΟΔΟΣ", "οδος", []int{0, 1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewName(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.original, got.Original)
			assert.Equal(t, tt.normalized, got.Normalized)
			assert.Equal(t, tt.source, got.Source)
		})
	}
}

func TestNewNameRejectsBlank(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "   ", "\t\n"} {
		_, err := NewName(in)
		require.ErrorIs(t, err, ErrEmptyName)
	}

	n, err := NewName(" S T E V E ")
	require.NoError(t, err)
	assert.Equal(t, "steve", n.Normalized)
	assert.Equal(t, []int{0, 2, 4, 6, 8}, n.Source)
}

func TestPlay(t *testing.T) {
	t.Parallel()

	round, err := Play("Amit", "Sara")
	require.NoError(t, err)

	assert.Equal(t, "Amit", round.NameA.Original)
	assert.Equal(t, "sara", round.NameB.Normalized)
	assert.Equal(t, []Pair{{0, 1, "a"}}, round.Cancellation.Pairs)
	assert.Equal(t, 6, round.Cancellation.Remaining)
	assert.Equal(t, Marriage, round.Elimination.Final)
	assert.Equal(t, "Marriage", round.Relationship.Name)
}

func TestPlayIgnoresCaseAndSpacing(t *testing.T) {
	t.Parallel()

	a, err := Play("Mary Jane", "Peter Parker")
	require.NoError(t, err)

	b, err := Play("maryjane", "PETER  PARKER")
	require.NoError(t, err)

	assert.Equal(t, a.Cancellation, b.Cancellation)
	assert.Equal(t, a.Relationship, b.Relationship)
}

func TestPlayDoesNotFoldCompatibilityForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b      string
		remaining int
	}{
		{"ＡＢ", "ab", 4},
		{"ﬁ", "fi", 3},
		{"x²", "x2", 2},
	}

	for _, tt := range tests {
		round, err := Play(tt.a, tt.b)
		require.NoError(t, err, "%s vs %s", tt.a, tt.b)
		assert.Equal(t, tt.remaining, round.Cancellation.Remaining, "%s vs %s", tt.a, tt.b)
	}
}

func TestPlayErrors(t *testing.T) {
	t.Parallel()

	_, err := Play(" ", "Sara")
	require.ErrorIs(t, err, ErrEmptyName)
	assert.Equal(t, "first name must not be empty", err.Error())

	_, err = Play("Amit", "")
	require.ErrorIs(t, err, ErrEmptyName)
	assert.Equal(t, "second name must not be empty", err.Error())

	_, err = Play("Steve", "steve")
	require.ErrorIs(t, err, ErrNamesCancelOut)
}

func TestRelationships(t *testing.T) {
	t.Parallel()

	all := Relationships()
	require.Len(t, all, 6)

	names := make([]string, 0, len(all))
	for i, r := range all {
		assert.Equal(t, Sequence()[i], r.Letter)
		names = append(names, r.Name)

		got, ok := Describe(r.Letter)
		require.True(t, ok)
		assert.Equal(t, r, got)
	}
	assert.Equal(t, []string{"Friend", "Love", "Affection", "Marriage", "Enemy", "Sibling"}, names)

	_, ok := Describe("Z")
	assert.False(t, ok)

	// Callers get a copy.
	all[0].Name = "changed"
	assert.Equal(t, "Friend", Relationships()[0].Name)
}
