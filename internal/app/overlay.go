package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// overlayAt draws overlay over base with its top-left corner at row, col.
// Lines outside base are dropped.
func overlayAt(base, overlay string, row, col, width int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")
	overlayWidth := blockWidth(overlayLines)
	row, col = max(row, 0), max(col, 0)

	padToCol := func(s string, col int) string {
		// Pad by visible width; s may carry ANSI sequences.
		if w := lipgloss.Width(s); w < col {
			s += strings.Repeat(" ", col-w)
		}
		return s
	}

	for i, overlayLine := range overlayLines {
		r := row + i
		if r >= len(baseLines) {
			break
		}
		baseLine := padToCol(baseLines[r], col)

		// Keep the left part of the base line, replace the middle with the
		// overlay and keep the tail, without breaking ANSI sequences.
		left := ansi.Cut(baseLine, 0, col)
		right := ansi.Cut(baseLine, col+overlayWidth, width)
		line := left + padToCol(overlayLine, overlayWidth) + right
		baseLines[r] = ansi.Truncate(line, width, "")
	}
	return strings.Join(baseLines, "\n")
}

// overlayBottomRight anchors overlay to the right edge with its last line
// on row bottom.
func overlayBottomRight(base, overlay string, bottom, width int) string {
	lines := strings.Split(overlay, "\n")
	return overlayAt(base, overlay, bottom-len(lines)+1, width-blockWidth(lines), width)
}

// overlayBottomLeft anchors overlay to the left edge with its last line on
// row bottom.
func overlayBottomLeft(base, overlay string, bottom, width int) string {
	lines := strings.Split(overlay, "\n")
	return overlayAt(base, overlay, bottom-len(lines)+1, 0, width)
}

func blockWidth(lines []string) int {
	w := 0
	for _, line := range lines {
		w = max(w, lipgloss.Width(line))
	}
	return w
}
