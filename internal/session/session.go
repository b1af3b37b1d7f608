package session

import (
	"fmt"

	"github.com/san-kum/cardsearch/internal/deck"
	"github.com/san-kum/cardsearch/internal/search"
)

type State int

const (
	Idle State = iota
	Running
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

const (
	ExampleCards  = "2, 3, 5, 8, 13, 15, 18, 20, 23, 25"
	ExampleTarget = 8
)

// Session replays one generated search a step at a time. A Session is owned
// by a single caller and is not safe for concurrent use.
type Session struct {
	sim    *search.Simulator
	policy deck.Policy

	state  State
	run    *search.Run
	cursor int
	result *search.Result
}

type Option func(*Session)

func WithPolicy(p deck.Policy) Option {
	return func(s *Session) { s.policy = p }
}

func WithSimulator(sim *search.Simulator) Option {
	return func(s *Session) { s.sim = sim }
}

func New(opts ...Option) *Session {
	s := &Session{sim: search.New()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start parses raw, generates the full step history and moves to Running.
// A parse error leaves the session Idle.
func (s *Session) Start(raw string, target int) error {
	if s.state != Idle {
		return &TransitionError{From: s.state, Op: "start"}
	}

	d, err := deck.ParseWith(raw, s.policy)
	if err != nil {
		return err
	}

	s.run = s.sim.Run(d, target)
	s.cursor = 0
	s.result = nil
	s.state = Running
	return nil
}

// LoadExample resets the session and starts the built-in example search.
func (s *Session) LoadExample() error {
	s.Reset()
	return s.Start(ExampleCards, ExampleTarget)
}

// Advance moves the cursor forward. At the last step it computes the result
// and moves to Completed instead.
func (s *Session) Advance() error {
	if s.state != Running {
		return &TransitionError{From: s.state, Op: "advance"}
	}

	if s.cursor >= len(s.run.Steps)-1 {
		res := s.run.Result()
		s.result = &res
		s.state = Completed
		return nil
	}

	s.cursor++
	return nil
}

// Back moves the cursor one step backward; it is a no-op at the first step.
func (s *Session) Back() error {
	if s.state != Running {
		return &TransitionError{From: s.state, Op: "go back"}
	}
	if s.cursor > 0 {
		s.cursor--
	}
	return nil
}

func (s *Session) Reset() {
	s.state = Idle
	s.run = nil
	s.cursor = 0
	s.result = nil
}

func (s *Session) State() State { return s.state }

func (s *Session) Cursor() int { return s.cursor }

func (s *Session) CanAdvance() bool { return s.state == Running }

func (s *Session) Current() (search.Step, bool) {
	if s.run == nil {
		return search.Step{}, false
	}
	return s.run.Steps[s.cursor], true
}

// History returns the steps up to and including the cursor.
func (s *Session) History() []search.Step {
	if s.run == nil {
		return nil
	}
	return s.run.Steps[:s.cursor+1]
}

func (s *Session) Steps() []search.Step {
	if s.run == nil {
		return nil
	}
	return s.run.Steps
}

func (s *Session) Deck() deck.Deck {
	if s.run == nil {
		return nil
	}
	return s.run.Deck
}

func (s *Session) Target() (int, bool) {
	if s.run == nil {
		return 0, false
	}
	return s.run.Target, true
}

// Result returns the summary once the session is Completed.
func (s *Session) Result() (search.Result, bool) {
	if s.state != Completed || s.result == nil {
		return search.Result{}, false
	}
	return *s.result, true
}
