// Package search generates the step history of a halving search over a
// sorted deck of cards.
//
// The package defines the step model and the generator:
//
//   - [Step]: snapshot of the deck after one action
//   - [Action]: closed set of step tags (initial, compare, remove_*, found, not_found)
//   - [Simulate]: eager step generation for a deck and a target
//   - [Simulator]: configurable generator with numbering schemes, metrics and observers
//   - [Summarize]: aggregate [Result] of a finished step history
//
// # Pivot rule
//
// For a working deck of length L the pivot is the exact centre floor(L/2)
// when L is odd and the last card of the first half L/2-1 when L is even:
//
//	PivotIndex(10) == 4
//	PivotIndex(9)  == 4
//	PivotIndex(1)  == 0
//
// # Example
//
//	d, _ := deck.Parse("2, 3, 5, 8, 13, 15, 18, 20, 23, 25")
//	steps := search.Simulate(d, 8)
//	res := search.Summarize(steps, d.Len())
//	// res.SearchPath == [13 3 5 8]
//
// Steps and results are plain values; a Simulator is not safe for
// concurrent use.
package search
