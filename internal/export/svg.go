// Package export writes frames and operation logs to files: SVG snapshots of
// the bars, and JSON or CSV traces that can be read back and replayed.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/sortviz/internal/display"
	"github.com/san-kum/sortviz/internal/oplog"
)

// Palette maps each highlight to an SVG fill colour.
type Palette map[display.Highlight]string

// DefaultPalette mirrors the web visualizer's bar colours.
var DefaultPalette = Palette{
	display.Neutral:   "#94a3b8",
	display.Comparing: "#facc15",
	display.Swapped:   "#f87171",
	display.Written:   "#4ade80",
	display.Sorted:    "#34d399",
}

func (p Palette) fill(h display.Highlight) string {
	if c, ok := p[h]; ok {
		return c
	}
	return DefaultPalette[display.Neutral]
}

// FrameToSVG draws one bar per position, scaled to the largest value.
func FrameToSVG(f display.Frame, width, height int, palette Palette) string {
	if palette == nil {
		palette = DefaultPalette
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	n := f.Len()
	if n == 0 {
		sb.WriteString("</svg>")
		return sb.String()
	}

	maxV := 0
	for i := 0; i < n; i++ {
		if v := f.Value(i); v > maxV {
			maxV = v
		}
	}
	if maxV == 0 {
		maxV = 1
	}

	slot := float64(width) / float64(n)
	gap := slot * 0.1
	for i := 0; i < n; i++ {
		v := f.Value(i)
		if v < 0 {
			v = 0
		}
		h := float64(v) / float64(maxV) * float64(height)
		x := float64(i)*slot + gap/2
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="1" fill="%s"/>
`, x, float64(height)-h, slot-gap, h, palette.fill(f.Highlight(i))))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// Inversions counts pairs i < j with a[i] > a[j].
func Inversions(a []int) int {
	n := 0
	for i := range a {
		for j := i + 1; j < len(a); j++ {
			if a[i] > a[j] {
				n++
			}
		}
	}
	return n
}

// InversionTrace replays log over snapshot and records the inversion count
// before the first operation and after every value-changing one.
func InversionTrace(snapshot []int, log *oplog.Log) []int {
	f := display.NewFrame(snapshot)
	trace := []int{Inversions(snapshot)}
	for i := 0; i < log.Len(); i++ {
		op := log.At(i)
		f.Apply(op)
		switch op.(type) {
		case oplog.Swap, oplog.Set:
			trace = append(trace, Inversions(f.Values()))
		}
	}
	return trace
}

// TraceToSVG plots a series as a polyline, e.g. an InversionTrace.
func TraceToSVG(series []int, width, height int, strokeColor string) string {
	if len(series) < 2 {
		return ""
	}

	minY, maxY := series[0], series[0]
	for _, v := range series {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}
	rangeX := float64(len(series) - 1)
	rangeY := float64(maxY - minY)
	if rangeY == 0 {
		rangeY = 1
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range series {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - float64(v-minY)/rangeY*float64(height)

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
