package viz

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles holds the lipgloss styles derived from one theme.
type styles struct {
	panel    lipgloss.Style
	title    lipgloss.Style
	subtle   lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	keyHint  lipgloss.Style
	key      lipgloss.Style
	header   lipgloss.Style
	card     lipgloss.Style
	pivot    lipgloss.Style
	found    lipgloss.Style
	success  lipgloss.Style
	missing  lipgloss.Style
	progress lipgloss.Style
}

func newStyles(t Theme) styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Width(6).
		Align(lipgloss.Center)

	return styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2),
		title:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		subtle:  lipgloss.NewStyle().Foreground(t.Muted),
		label:   lipgloss.NewStyle().Foreground(t.Muted),
		value:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		keyHint: lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		key:     lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Border),
		card:     card,
		pivot:    card.BorderForeground(t.Pivot).Foreground(t.Pivot).Bold(true),
		found:    card.BorderForeground(t.Found).Foreground(t.Found).Bold(true),
		success:  lipgloss.NewStyle().Bold(true).Foreground(t.Found),
		missing:  lipgloss.NewStyle().Bold(true).Foreground(t.Missing),
		progress: lipgloss.NewStyle().Foreground(t.Accent),
	}
}

// GradientText creates a gradient effect on text using color interpolation
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	sr, sg, sb := parseHex(string(startColor))
	er, eg, eb := parseHex(string(endColor))

	var result strings.Builder
	n := len(runes)
	for i, c := range runes {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		r := int(float64(sr) + t*float64(er-sr))
		g := int(float64(sg) + t*float64(eg-sg))
		b := int(float64(sb) + t*float64(eb-sb))

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(r, g, b)))
		result.WriteString(style.Render(string(c)))
	}
	return result.String()
}

// ProgressBar renders the share of the deck already eliminated.
func ProgressBar(percent float64, width int, style lipgloss.Style) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return style.Render(strings.Repeat("█", filled)) + strings.Repeat("░", width-filled)
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 255, 255, 255
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
