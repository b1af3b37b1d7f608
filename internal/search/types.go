package search

import "github.com/san-kum/cardsearch/internal/deck"

type Action string

const (
	ActionInitial     Action = "initial"
	ActionCompare     Action = "compare"
	ActionRemoveAbove Action = "remove_above"
	ActionRemoveBelow Action = "remove_below"
	ActionFound       Action = "found"
	ActionNotFound    Action = "not_found"
)

func (a Action) IsRemoval() bool {
	return a == ActionRemoveAbove || a == ActionRemoveBelow
}

func (a Action) IsTerminal() bool {
	return a == ActionFound || a == ActionNotFound
}

// Step is one point-in-time snapshot of a search. Cards holds the deck after
// the step's action; SelectedIndex refers to the deck before any removal.
type Step struct {
	Number        int    `json:"stepNumber" yaml:"step_number"`
	Cards         []int  `json:"cards" yaml:"cards"`
	SelectedCard  *int   `json:"selectedCard,omitempty" yaml:"selected_card,omitempty"`
	SelectedIndex *int   `json:"selectedIndex,omitempty" yaml:"selected_index,omitempty"`
	Removed       []int  `json:"removed,omitempty" yaml:"removed,omitempty"`
	Action        Action `json:"action" yaml:"action"`
	Description   string `json:"description" yaml:"description"`
	Comparisons   int    `json:"comparisons" yaml:"comparisons"`
	Target        int    `json:"target" yaml:"target"`
}

// Selection returns the pivot card and its index when the step has one.
func (s Step) Selection() (card, index int, ok bool) {
	if s.SelectedCard == nil || s.SelectedIndex == nil {
		return 0, 0, false
	}
	return *s.SelectedCard, *s.SelectedIndex, true
}

type Result struct {
	Found            bool  `json:"found" yaml:"found"`
	Target           int   `json:"target" yaml:"target"`
	TotalSteps       int   `json:"totalSteps" yaml:"total_steps"`
	TotalComparisons int   `json:"totalComparisons" yaml:"total_comparisons"`
	SearchPath       []int `json:"searchPath" yaml:"search_path"`
	Efficiency       int   `json:"efficiency" yaml:"efficiency"`
}

// Run bundles one simulator invocation.
type Run struct {
	Deck    deck.Deck
	Target  int
	Steps   []Step
	Metrics map[string]float64
}

func (r *Run) Result() Result {
	return Summarize(r.Steps, r.Deck.Len())
}

type Metric interface {
	Name() string
	Observe(s Step)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Step)
}

// Numbering selects how step numbers are assigned.
type Numbering int

const (
	// Legacy keeps one running counter: compare and its resolution
	// share an iteration pair and not_found reuses the counter at loop exit.
	Legacy Numbering = iota
	// Sequential numbers steps 0..N-1.
	Sequential
)

func (n Numbering) String() string {
	if n == Sequential {
		return "sequential"
	}
	return "legacy"
}
