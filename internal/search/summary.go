package search

import "math"

// Summarize computes the aggregate result of a finished step history.
// originalDeckSize is the length of the deck the history was generated from;
// efficiency is 0 for an empty deck.
func Summarize(steps []Step, originalDeckSize int) Result {
	if len(steps) == 0 {
		return Result{SearchPath: []int{}}
	}

	last := steps[len(steps)-1]

	path := make([]int, 0, len(steps)/2)
	for _, st := range steps {
		if st.Action != ActionCompare {
			continue
		}
		if card, _, ok := st.Selection(); ok {
			path = append(path, card)
		}
	}

	res := Result{
		Found:            last.Action == ActionFound,
		Target:           last.Target,
		TotalSteps:       len(steps) - 1,
		TotalComparisons: last.Comparisons,
		SearchPath:       path,
	}
	res.Efficiency = Efficiency(res.TotalComparisons, originalDeckSize)
	return res
}

// Efficiency returns round(comparisons / deckSize * 100).
func Efficiency(comparisons, deckSize int) int {
	if deckSize <= 0 {
		return 0
	}
	return int(math.Round(float64(comparisons) / float64(deckSize) * 100))
}
