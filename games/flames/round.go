/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package flames

import "fmt"

// Round is everything needed to replay one game: both names, the strike
// order, the counting order and the outcome.
type Round struct {
	NameA        Name         `json:"name_a"`
	NameB        Name         `json:"name_b"`
	Cancellation Cancellation `json:"cancellation"`
	Elimination  Elimination  `json:"elimination"`
	Relationship Relationship `json:"relationship"`
}

// Play runs a full round for the two raw names.
func Play(nameA, nameB string) (Round, error) {
	a, err := NewName(nameA)
	if err != nil {
		return Round{}, fmt.Errorf("first %w", err)
	}

	b, err := NewName(nameB)
	if err != nil {
		return Round{}, fmt.Errorf("second %w", err)
	}

	c := Cancel(a.Normalized, b.Normalized)
	if c.Remaining == 0 {
		return Round{}, ErrNamesCancelOut
	}

	e, err := RunElimination(c.Remaining)
	if err != nil {
		return Round{}, err
	}

	rel, ok := Describe(e.Final)
	if !ok {
		return Round{}, fmt.Errorf("no relationship for letter %q", e.Final)
	}

	return Round{
		NameA:        a,
		NameB:        b,
		Cancellation: c,
		Elimination:  e,
		Relationship: rel,
	}, nil
}
