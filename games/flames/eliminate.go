/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package flames

import "fmt"

// Step is one elimination round.
type Step struct {
	Round  int    `json:"round"`  // 0-based round number
	Start  int    `json:"start"`  // index the count began at
	Index  int    `json:"index"`  // index struck, in the sequence as it stood this round
	Letter Letter `json:"letter"` // letter struck
}

// Elimination is the full record of a counting-out game.
type Elimination struct {
	Count int    `json:"count"`
	Order []Step `json:"order"`
	Final Letter `json:"final"`
}

// Eliminate counts count letters around categories, starting at start,
// and strikes the letter it lands on. Counting resumes from the letter
// after the one struck, wrapping to the front when the last letter goes,
// until a single letter survives. categories is not modified.
func Eliminate(count int, categories []Letter, start int) (Elimination, error) {
	if count <= 0 {
		return Elimination{}, fmt.Errorf("%w: %d", ErrNonPositiveCount, count)
	}
	if len(categories) == 0 {
		return Elimination{}, ErrNoCategories
	}
	if start < 0 || start >= len(categories) {
		return Elimination{}, fmt.Errorf("%w: %d of %d", ErrStartOutOfRange, start, len(categories))
	}

	seq := make([]Letter, len(categories))
	copy(seq, categories)

	order := make([]Step, 0, len(seq)-1)

	for round := 0; len(seq) > 1; round++ {
		n := len(seq)
		idx := (start + (count-1)%n) % n

		order = append(order, Step{
			Round:  round,
			Start:  start,
			Index:  idx,
			Letter: seq[idx],
		})

		seq = append(seq[:idx], seq[idx+1:]...)

		if idx == n-1 {
			start = 0
		} else {
			start = idx
		}
	}

	return Elimination{
		Count: count,
		Order: order,
		Final: seq[0],
	}, nil
}

// RunElimination eliminates over the full FLAMES sequence from its first
// letter.
func RunElimination(count int) (Elimination, error) {
	return Eliminate(count, Sequence(), 0)
}
