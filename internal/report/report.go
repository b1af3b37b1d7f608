package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/san-kum/cardsearch/internal/deck"
	"github.com/san-kum/cardsearch/internal/search"
)

// Mode controls the output format.
type Mode int

const (
	ASCII    Mode = iota // Fixed-width terminal tables
	Markdown             // GitHub-flavoured Markdown tables
)

func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(name) {
	case "", "ascii", "text":
		return ASCII, nil
	case "markdown", "md":
		return Markdown, nil
	default:
		return ASCII, fmt.Errorf("report: unknown table mode %q", name)
	}
}

func newWriter(m Mode) table.Writer {
	w := table.NewWriter()
	if m == ASCII {
		w.SetStyle(table.StyleLight)
	}
	return w
}

func render(w table.Writer, m Mode) string {
	if m == Markdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}

// Steps renders the step history with one row per step.
func Steps(steps []search.Step, m Mode) string {
	w := newWriter(m)
	w.AppendHeader(table.Row{"#", "Action", "Pivot", "Cmp", "Cards", "Description"})

	for _, st := range steps {
		pivot := ""
		if card, idx, ok := st.Selection(); ok {
			pivot = fmt.Sprintf("%d @%d", card, idx)
		}
		w.AppendRow(table.Row{st.Number, st.Action, pivot, st.Comparisons, formatCards(st.Cards), st.Description})
	}

	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, WidthMax: 40},
		{Number: 6, WidthMax: 60},
	})
	return render(w, m)
}

// Summary renders the result and any run metrics as a two column table.
func Summary(res search.Result, metrics map[string]float64, m Mode) string {
	w := newWriter(m)
	w.AppendHeader(table.Row{"Statistic", "Value"})

	outcome := "not found"
	if res.Found {
		outcome = "found"
	}
	w.AppendRows([]table.Row{
		{"target", res.Target},
		{"outcome", outcome},
		{"total steps", res.TotalSteps},
		{"total comparisons", res.TotalComparisons},
		{"efficiency", fmt.Sprintf("%d%%", res.Efficiency)},
		{"search path", SearchPath(res)},
	})

	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		w.AppendRow(table.Row{name, fmt.Sprintf("%.3f", metrics[name])})
	}

	return render(w, m)
}

// SearchPath formats the pivots of a result as "13 → 3 → 5 → 8 (Found!)".
func SearchPath(res search.Result) string {
	suffix := "(Not Found)"
	if res.Found {
		suffix = "(Found!)"
	}
	if len(res.SearchPath) == 0 {
		return suffix
	}
	return deck.Join(res.SearchPath, " → ") + " " + suffix
}

// SweepRow is one target of a sweep over a deck.
type SweepRow struct {
	Target int
	Result search.Result
}

// Sweep renders the outcome of searching for each target, with a footer
// holding the worst and mean comparison counts.
func Sweep(rows []SweepRow, m Mode) string {
	w := newWriter(m)
	w.AppendHeader(table.Row{"Target", "Found", "Comparisons", "Steps", "Efficiency", "Path"})

	worst, sum := 0, 0
	for _, r := range rows {
		res := r.Result
		w.AppendRow(table.Row{r.Target, res.Found, res.TotalComparisons, res.TotalSteps, fmt.Sprintf("%d%%", res.Efficiency), SearchPath(res)})
		if res.TotalComparisons > worst {
			worst = res.TotalComparisons
		}
		sum += res.TotalComparisons
	}

	mean := 0.0
	if len(rows) > 0 {
		mean = float64(sum) / float64(len(rows))
	}
	w.AppendFooter(table.Row{"", "", fmt.Sprintf("max %d / mean %.2f", worst, mean), "", "", ""})

	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	return render(w, m)
}

func formatCards(cards []int) string {
	return "[" + deck.Join(cards, ", ") + "]"
}
