package metrics

import "github.com/san-kum/cardsearch/internal/search"

// Reduction is the mean fraction of the working deck discarded per removal.
type Reduction struct {
	name    string
	sum     float64
	samples int
}

func NewReduction() *Reduction {
	return &Reduction{
		name: "reduction",
	}
}

func (r *Reduction) Name() string {
	return r.name
}

func (r *Reduction) Observe(s search.Step) {
	if !s.Action.IsRemoval() {
		return
	}
	before := len(s.Cards) + len(s.Removed)
	if before == 0 {
		return
	}
	r.sum += float64(len(s.Removed)) / float64(before)
	r.samples++
}

func (r *Reduction) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return r.sum / float64(r.samples)
}

func (r *Reduction) Reset() {
	r.sum = 0
	r.samples = 0
}
