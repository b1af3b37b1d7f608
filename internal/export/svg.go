package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/cardsearch/internal/search"
)

const (
	cellWidth  = 44
	cellHeight = 28
	cellGap    = 6
	labelWidth = 120
)

var actionColor = map[search.Action]string{
	search.ActionInitial:     "#6b7280",
	search.ActionCompare:     "#f59e0b",
	search.ActionRemoveAbove: "#3b82f6",
	search.ActionRemoveBelow: "#3b82f6",
	search.ActionFound:       "#22c55e",
	search.ActionNotFound:    "#ef4444",
}

// RunToSVG draws one row per step: the step label followed by the cards left
// in play. The pivot of compare and found steps is filled with the action
// colour.
func RunToSVG(run *search.Run, scale float64) string {
	if run == nil || len(run.Steps) == 0 {
		return ""
	}
	if scale <= 0 {
		scale = 1
	}

	cols := run.Deck.Len()
	if cols == 0 {
		cols = 1
	}
	width := (float64(labelWidth) + float64(cols)*(cellWidth+cellGap) + cellGap) * scale
	height := float64(len(run.Steps))*(cellHeight+cellGap)*scale + cellGap*scale

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#f9fafb"/>
<g font-family="monospace" font-size="%.0f">
`, width, height, width, height, 12*scale))

	for row, st := range run.Steps {
		y := (float64(row)*(cellHeight+cellGap) + cellGap) * scale
		color := actionColor[st.Action]

		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s">%d %s</text>
`, cellGap*scale, y+cellHeight*scale*0.65, color, st.Number, st.Action))

		pivot, _, hasPivot := st.Selection()
		highlight := hasPivot && (st.Action == search.ActionCompare || st.Action == search.ActionFound)

		for col, card := range st.Cards {
			x := (float64(labelWidth) + float64(col)*(cellWidth+cellGap)) * scale
			fill, text := "#ffffff", "#111827"
			if highlight && card == pivot {
				fill, text = color, "#ffffff"
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" stroke="#d1d5db"/>
`, x, y, cellWidth*scale, cellHeight*scale, 4*scale, fill))
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" text-anchor="middle">%d</text>
`, x+cellWidth*scale/2, y+cellHeight*scale*0.65, text, card))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// RemainingToSVG plots the number of cards left in play after every step.
func RemainingToSVG(run *search.Run, width, height int, strokeColor string) string {
	if run == nil || len(run.Steps) < 2 {
		return ""
	}

	maxY := 1
	for _, st := range run.Steps {
		if len(st.Cards) > maxY {
			maxY = len(st.Cards)
		}
	}
	maxX := len(run.Steps) - 1

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	pad := 0.1
	for i, st := range run.Steps {
		x := (pad + (1-2*pad)*float64(i)/float64(maxX)) * float64(width)
		y := float64(height) - (pad+(1-2*pad)*float64(len(st.Cards))/float64(maxY))*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
