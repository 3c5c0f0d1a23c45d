package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// overlayCenter draws overlay over the middle of base.
func overlayCenter(base, overlay string, width, height int) string {
	lines := splitLines(base)
	if width <= 0 {
		width = maxLineWidth(lines)
	}
	if height <= 0 {
		height = len(lines)
	}
	box := splitLines(overlay)
	x := (width - maxLineWidth(box)) / 2
	y := (height - len(box)) / 2
	return overlayAt(base, overlay, max(x, 0), max(y, 0), width, height)
}

// overlayAt composites overlay on top of base at cell (x, y).
func overlayAt(base, overlay string, x, y, width, height int) string {
	baseLines := splitLines(base)
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}
	overlayLines := splitLines(overlay)
	overlayWidth := maxLineWidth(overlayLines)
	for i, line := range overlayLines {
		row := y + i
		if row >= len(baseLines) || row >= height {
			break
		}
		target := padRight(baseLines[row], width)
		left := ansi.Truncate(target, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		pos := x + overlayWidth
		right := ansi.TruncateLeft(target, pos, "")
		baseLines[row] = left + padRight(line, overlayWidth) + right
	}
	return strings.Join(baseLines, "\n")
}

func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

func maxLineWidth(lines []string) int {
	m := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > m {
			m = w
		}
	}
	return m
}

// padRight pads s with spaces so its visual width equals width.
func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if width <= 0 || w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
