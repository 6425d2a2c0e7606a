package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/sortviz/internal/display"
)

var eighths = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderBars draws f as vertical bars in a width x height cell area. Bar
// tops use eighth blocks; each bar takes its theme colour from its
// highlight. When there are more bars than columns the frame is sampled.
func RenderBars(f display.Frame, t Theme, width, height int) string {
	if height <= 0 {
		return ""
	}
	n := f.Len()
	if n == 0 || width <= 0 {
		return strings.Repeat("\n", height-1)
	}

	maxV := 1
	for i := 0; i < n; i++ {
		maxV = max(maxV, f.Value(i))
	}

	cols := min(n, width)
	barW := max(1, width/cols)
	gap := 0
	if barW > 2 {
		gap = 1
	}

	units := make([]int, cols)
	tints := make([]display.Highlight, cols)
	for c := range units {
		i := c * n / cols
		units[c] = max(0, f.Value(i)) * height * 8 / maxV
		tints[c] = f.Highlight(i)
	}

	styles := make(map[display.Highlight]lipgloss.Style, 5)
	for h := display.Neutral; h <= display.Sorted; h++ {
		styles[h] = lipgloss.NewStyle().Foreground(t.BarColor(h))
	}

	lines := make([]string, height)
	for row := 0; row < height; row++ {
		floor := (height - 1 - row) * 8

		var line, run strings.Builder
		runTint := display.Highlight(-1)
		flush := func() {
			if run.Len() > 0 {
				line.WriteString(styles[runTint].Render(run.String()))
				run.Reset()
			}
		}
		for c := 0; c < cols; c++ {
			if tints[c] != runTint {
				flush()
				runTint = tints[c]
			}
			fill := max(0, min(units[c]-floor, 8))
			run.WriteString(strings.Repeat(string(eighths[fill]), barW-gap))
			run.WriteString(strings.Repeat(" ", gap))
		}
		flush()
		lines[row] = line.String()
	}
	return strings.Join(lines, "\n")
}

// Legend shows the colour of every marker.
func Legend(t Theme) string {
	var parts []string
	for h := display.Comparing; h <= display.Sorted; h++ {
		sw := lipgloss.NewStyle().Foreground(t.BarColor(h)).Render("■")
		parts = append(parts, sw+" "+Subtle.Render(h.String()))
	}
	return strings.Join(parts, "  ")
}
