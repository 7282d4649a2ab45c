/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package flames

// Pair records one cancellation: a letter struck from both names.
type Pair struct {
	IndexA int    `json:"index_a"`
	IndexB int    `json:"index_b"`
	Letter string `json:"letter"`
}

// Cancellation is the outcome of striking common letters from two names.
type Cancellation struct {
	Pairs     []Pair `json:"pairs"`
	Remaining int    `json:"remaining"`
}

// Cancel strikes matching letters from a and b, which must already be
// normalized. Each letter of a, left to right, is paired with the first
// letter of b that is equal and not yet struck. The pairing is greedy and
// order-sensitive, and Pairs is reported in the order the strikes occur.
func Cancel(a, b string) Cancellation {
	left := []rune(a)
	right := []rune(b)

	struckA := make([]bool, len(left))
	struckB := make([]bool, len(right))

	pairs := []Pair{}

	for i, r := range left {
		for j, s := range right {
			if struckB[j] || r != s {
				continue
			}

			struckA[i] = true
			struckB[j] = true
			pairs = append(pairs, Pair{
				IndexA: i,
				IndexB: j,
				Letter: string(r),
			})

			break
		}
	}

	remaining := 0
	for _, struck := range struckA {
		if !struck {
			remaining++
		}
	}
	for _, struck := range struckB {
		if !struck {
			remaining++
		}
	}

	return Cancellation{
		Pairs:     pairs,
		Remaining: remaining,
	}
}
