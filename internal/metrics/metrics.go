package metrics

import "github.com/san-kum/cardsearch/internal/search"

// Default returns the metrics attached to every run.
func Default() []search.Metric {
	return []search.Metric{
		NewEliminated(),
		NewReduction(),
	}
}

// Attach adds the default metrics to s and returns it.
func Attach(s *search.Simulator) *search.Simulator {
	for _, m := range Default() {
		s.AddMetric(m)
	}
	return s
}
