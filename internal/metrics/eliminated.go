package metrics

import "github.com/san-kum/cardsearch/internal/search"

// Eliminated counts the cards discarded by removal steps.
type Eliminated struct {
	name  string
	total int
}

func NewEliminated() *Eliminated {
	return &Eliminated{
		name: "eliminated",
	}
}

func (e *Eliminated) Name() string {
	return e.name
}

func (e *Eliminated) Observe(s search.Step) {
	if s.Action.IsRemoval() {
		e.total += len(s.Removed)
	}
}

func (e *Eliminated) Value() float64 {
	return float64(e.total)
}

func (e *Eliminated) Reset() {
	e.total = 0
}
