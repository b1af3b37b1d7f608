package viz

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/cardsearch/internal/deck"
	"github.com/san-kum/cardsearch/internal/report"
	"github.com/san-kum/cardsearch/internal/search"
	"github.com/san-kum/cardsearch/internal/session"
)

const historyRows = 6

// Model is the Bubble Tea model for replaying a search. It keeps the raw
// input so the search can be restarted from scratch.
type Model struct {
	sess   *session.Session
	cards  string
	target int

	theme  int
	styles styles
	width  int
	err    error
}

// NewModel starts sess on cards/target. A parse error is returned and the
// model is not usable.
func NewModel(sess *session.Session, cards string, target int, theme string) (Model, error) {
	m := Model{
		sess:   sess,
		cards:  cards,
		target: target,
		theme:  themeIndex(theme),
		width:  80,
	}
	m.styles = newStyles(Themes[m.theme])

	sess.Reset()
	if err := sess.Start(cards, target); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.err = nil
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "n", " ", "right", "l":
		if m.sess.CanAdvance() {
			m.err = m.sess.Advance()
		}
	case "b", "left", "h":
		if m.sess.CanAdvance() {
			m.err = m.sess.Back()
		}
	case "r":
		m.sess.Reset()
		m.err = m.sess.Start(m.cards, m.target)
	case "e":
		if m.err = m.sess.LoadExample(); m.err == nil {
			m.cards, m.target = session.ExampleCards, session.ExampleTarget
		}
	case "t":
		m.theme = (m.theme + 1) % len(Themes)
		m.styles = newStyles(Themes[m.theme])
	}
	return m, nil
}

// Session exposes the underlying session; mainly for tests and callers that
// want the final result after the program exits.
func (m Model) Session() *session.Session { return m.sess }

func (m Model) Theme() Theme { return Themes[m.theme] }

func (m Model) View() string {
	st := m.styles
	th := Themes[m.theme]

	var b strings.Builder
	b.WriteString("\n  " + GradientText("CARD SEARCH", th.Primary, th.Accent) + "\n")
	b.WriteString("  " + st.subtle.Render("binary search, one card at a time") + "\n\n")

	step, ok := m.sess.Current()
	if !ok {
		b.WriteString("  " + st.subtle.Render("no search loaded") + "\n")
		b.WriteString(m.viewKeys())
		return b.String()
	}

	steps := m.sess.Steps()
	b.WriteString(fmt.Sprintf("  %s %s   %s %s   %s %s\n\n",
		st.label.Render("target"), st.value.Render(strconv.Itoa(step.Target)),
		st.label.Render("step"), st.value.Render(fmt.Sprintf("%d/%d", m.sess.Cursor()+1, len(steps))),
		st.label.Render("comparisons"), st.value.Render(strconv.Itoa(step.Comparisons)),
	))

	b.WriteString(indent(m.viewCards(step), "  ") + "\n")
	if len(step.Removed) > 0 {
		b.WriteString("  " + st.subtle.Render("removed "+formatCards(step.Removed)) + "\n")
	}
	b.WriteString("\n  " + step.Description + "\n\n")

	size := m.sess.Deck().Len()
	eliminated := 0.0
	if size > 0 {
		eliminated = 1 - float64(len(step.Cards))/float64(size)
	}
	b.WriteString(fmt.Sprintf("  %s %s %3.0f%%\n\n",
		st.label.Render("eliminated"), ProgressBar(eliminated, 30, st.progress), eliminated*100))

	b.WriteString(indent(m.viewHistory(), "  ") + "\n")
	if res, ok := m.sess.Result(); ok {
		b.WriteString(indent(m.viewResult(res), "  ") + "\n")
	}

	if m.err != nil {
		b.WriteString("\n  " + st.missing.Render(m.errText()) + "\n")
	}
	b.WriteString(m.viewKeys())
	return b.String()
}

func (m Model) errText() string {
	if errors.Is(m.err, session.ErrInvalidTransition) {
		return "nothing to do in state " + m.sess.State().String()
	}
	return m.err.Error()
}

// viewCards draws the remaining cards, highlighting the selected one.
func (m Model) viewCards(step search.Step) string {
	st := m.styles
	if len(step.Cards) == 0 {
		return st.subtle.Render("(no cards remaining)")
	}

	_, pivot, selected := step.Selection()
	if step.Action.IsRemoval() {
		selected = false
	}

	boxes := make([]string, 0, len(step.Cards))
	for i, c := range step.Cards {
		style := st.card
		if selected && i == pivot {
			style = st.pivot
			if step.Action == search.ActionFound {
				style = st.found
			}
		}
		boxes = append(boxes, style.Render(strconv.Itoa(c)))
	}

	if m.width > 0 {
		perRow := m.width / 8
		if perRow < 1 {
			perRow = 1
		}
		var rows []string
		for i := 0; i < len(boxes); i += perRow {
			end := i + perRow
			if end > len(boxes) {
				end = len(boxes)
			}
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes[i:end]...))
		}
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m Model) viewHistory() string {
	st := m.styles
	history := m.sess.History()
	start := len(history) - historyRows
	if start < 0 {
		start = 0
	}

	var lines []string
	lines = append(lines, st.header.Render("history"))
	for _, s := range history[start:] {
		line := fmt.Sprintf("#%-3d %-13s", s.Number, s.Action)
		if card, _, ok := s.Selection(); ok {
			line += " " + strconv.Itoa(card)
		}
		lines = append(lines, line)
	}
	return st.panel.Render(strings.Join(lines, "\n"))
}

func (m Model) viewResult(res search.Result) string {
	st := m.styles

	status := st.success.Render("FOUND")
	if !res.Found {
		status = st.missing.Render("NOT FOUND")
	}

	lines := []string{
		st.header.Render("result") + " " + status,
		fmt.Sprintf("%s %d", st.label.Render("total steps      "), res.TotalSteps),
		fmt.Sprintf("%s %d", st.label.Render("total comparisons"), res.TotalComparisons),
		fmt.Sprintf("%s %d%%", st.label.Render("efficiency       "), res.Efficiency),
		fmt.Sprintf("%s %s", st.label.Render("path             "), report.SearchPath(res)),
	}
	return st.panel.Render(strings.Join(lines, "\n"))
}

func (m Model) viewKeys() string {
	st := m.styles
	hint := func(key, desc string) string {
		return st.key.Render(key) + st.keyHint.Render(" "+desc+"  ")
	}
	return "\n  " + hint("n/→", "next") + hint("b/←", "back") + hint("r", "restart") +
		hint("e", "example") + hint("t", "theme") + hint("q", "quit") + "\n"
}

func formatCards(cards []int) string {
	return "[" + deck.Join(cards, ", ") + "]"
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// RunReplay starts the interactive replay of cards/target on sess.
func RunReplay(sess *session.Session, cards string, target int, theme string) error {
	m, err := NewModel(sess, cards, target, theme)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
