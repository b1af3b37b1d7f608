package search

import (
	"fmt"
	"strings"

	"github.com/san-kum/cardsearch/internal/deck"
)

type Option func(*Simulator)

func WithNumbering(n Numbering) Option {
	return func(s *Simulator) { s.numbering = n }
}

type Simulator struct {
	numbering Numbering
	metrics   []Metric
	observers []Observer
}

func New(opts ...Option) *Simulator {
	s := &Simulator{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Simulate runs the search with the default Legacy numbering.
func Simulate(d deck.Deck, target int) []Step {
	return New().Run(d, target).Steps
}

// Run generates the complete step history for target in d. It never fails:
// every iteration shrinks the working deck or ends the search.
func (s *Simulator) Run(d deck.Deck, target int) *Run {
	for _, m := range s.metrics {
		m.Reset()
	}

	g := &generator{numbering: s.numbering, target: target}
	steps := g.generate(d)

	for _, st := range steps {
		for _, m := range s.metrics {
			m.Observe(st)
		}
		for _, obs := range s.observers {
			obs.OnStep(st)
		}
	}

	metrics := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		metrics[m.Name()] = m.Value()
	}

	return &Run{
		Deck:    d.Clone(),
		Target:  target,
		Steps:   steps,
		Metrics: metrics,
	}
}

type generator struct {
	numbering Numbering
	target    int
	steps     []Step
	counter   int
}

// number returns the step number for the next emitted step. offset is the
// distance from the legacy running counter.
func (g *generator) number(offset int) int {
	if g.numbering == Sequential {
		return len(g.steps)
	}
	return g.counter + offset
}

func (g *generator) emit(st Step) {
	st.Target = g.target
	g.steps = append(g.steps, st)
}

func (g *generator) generate(d deck.Deck) []Step {
	target := g.target
	current := d.Ints()
	comparisons := 0

	g.emit(Step{
		Number:      g.number(0),
		Cards:       clone(current),
		Action:      ActionInitial,
		Description: fmt.Sprintf("Initial state: %d cards remaining. Target number is %d.", len(current), target),
	})

	found := false
	for len(current) > 0 {
		g.counter++
		idx := PivotIndex(len(current))
		pivot := current[idx]
		comparisons++

		g.emit(Step{
			Number:        g.number(0),
			Cards:         clone(current),
			SelectedCard:  intPtr(pivot),
			SelectedIndex: intPtr(idx),
			Action:        ActionCompare,
			Description:   compareDescription(pivot, idx, len(current)),
			Comparisons:   comparisons,
		})

		if pivot == target {
			g.emit(Step{
				Number:        g.number(1),
				Cards:         clone(current),
				SelectedCard:  intPtr(pivot),
				SelectedIndex: intPtr(idx),
				Action:        ActionFound,
				Description:   fmt.Sprintf("Target %d found! The search is complete.", target),
				Comparisons:   comparisons,
			})
			found = true
			break
		}

		var removed []int
		var action Action
		var desc string
		if pivot < target {
			removed = clone(current[:idx+1])
			current = clone(current[idx+1:])
			action = ActionRemoveAbove
			desc = fmt.Sprintf("%d < %d: removing %d and every card above it. Removed: [%s]. %d cards remaining.",
				pivot, target, pivot, deck.Join(removed, ", "), len(current))
		} else {
			removed = clone(current[idx:])
			current = clone(current[:idx])
			action = ActionRemoveBelow
			desc = fmt.Sprintf("%d > %d: removing %d and every card below it. Removed: [%s]. %d cards remaining.",
				pivot, target, pivot, deck.Join(removed, ", "), len(current))
		}

		g.emit(Step{
			Number:        g.number(1),
			Cards:         current,
			SelectedCard:  intPtr(pivot),
			SelectedIndex: intPtr(idx),
			Removed:       removed,
			Action:        action,
			Description:   desc,
			Comparisons:   comparisons,
		})
		g.counter++
	}

	if !found {
		g.emit(Step{
			Number:      g.number(0),
			Cards:       []int{},
			Action:      ActionNotFound,
			Description: fmt.Sprintf("Target %d not found. No cards remaining.", target),
			Comparisons: comparisons,
		})
	}

	return g.steps
}

func compareDescription(pivot, idx, length int) string {
	rule := "Even count: choosing the last card of the first half."
	if length%2 == 1 {
		rule = "Odd count: choosing the exact center."
	}
	return fmt.Sprintf("Selected middle card: %d (position %d of %d). %s", pivot, idx+1, length, rule)
}

func ParseNumbering(name string) (Numbering, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "legacy":
		return Legacy, nil
	case "sequential":
		return Sequential, nil
	default:
		return Legacy, fmt.Errorf("search: unknown numbering scheme %q", name)
	}
}

func clone(cards []int) []int {
	c := make([]int, len(cards))
	copy(c, cards)
	return c
}

func intPtr(v int) *int { return &v }
