// Package tui draws playback straight to a terminal with ANSI escapes, for
// runs that do not need the interactive application.
package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/san-kum/sortviz/internal/display"
	"github.com/san-kum/sortviz/internal/oplog"
	"github.com/san-kum/sortviz/internal/playback"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
	reset       = "\033[0m"
)

var highlightColor = map[display.Highlight]string{
	display.Neutral:   "\033[37m",
	display.Comparing: "\033[93m",
	display.Swapped:   "\033[91m",
	display.Written:   "\033[92m",
	display.Sorted:    "\033[32m",
}

var highlightRune = map[display.Highlight]rune{
	display.Neutral:   '|',
	display.Comparing: '?',
	display.Swapped:   'x',
	display.Written:   '+',
	display.Sorted:    '#',
}

// LiveRenderer is a playback.Observer that redraws at most frameRate times
// per second. The final frame is always drawn.
type LiveRenderer struct {
	out       io.Writer
	frameRate int
	color     bool
	lastFrame time.Time
	now       func() time.Time
	canvas    [][]rune
	tints     [][]display.Highlight
	last      display.Frame
	frames    int
}

func NewLiveRenderer(out io.Writer, frameRate int, color bool) *LiveRenderer {
	if out == nil {
		out = os.Stdout
	}
	if frameRate <= 0 {
		frameRate = 30
	}
	canvas := make([][]rune, height)
	tints := make([][]display.Highlight, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		tints[i] = make([]display.Highlight, width)
	}
	return &LiveRenderer{
		out:       out,
		frameRate: frameRate,
		color:     color,
		now:       time.Now,
		canvas:    canvas,
		tints:     tints,
	}
}

func (r *LiveRenderer) OnApply(op oplog.Op, st playback.Status, f display.Frame) {
	r.last = f
	now := r.now()
	if now.Sub(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = now
	r.draw(f)
	r.render(st, op.String())
}

// OnFinish draws the last applied frame even if it was throttled.
func (r *LiveRenderer) OnFinish(st playback.Status) {
	r.draw(r.last)
	r.render(st, "done")
}

// Frames is how many times the canvas was written out.
func (r *LiveRenderer) Frames() int { return r.frames }

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
			r.tints[y][x] = display.Neutral
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune, h display.Highlight) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
		r.tints[y][x] = h
	}
}

// draw lays out one column per bar, sampling when there are more bars than
// columns.
func (r *LiveRenderer) draw(f display.Frame) {
	r.clear()
	n := f.Len()
	if n == 0 {
		return
	}

	maxV := 1
	for i := 0; i < n; i++ {
		if v := f.Value(i); v > maxV {
			maxV = v
		}
	}

	cols := n
	if cols > width {
		cols = width
	}
	for col := 0; col < cols; col++ {
		i := col * n / cols
		h := f.Highlight(i)
		bh := f.Value(i) * height / maxV
		if bh < 1 && f.Value(i) > 0 {
			bh = 1
		}
		for y := height - 1; y >= height-bh; y-- {
			r.set(col, y, highlightRune[h], h)
		}
	}
}

func (r *LiveRenderer) render(st playback.Status, last string) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  %d/%d  %s\n", st.Algorithm, st.Cursor, st.LogLen, st.State))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for y, row := range r.canvas {
		b.WriteString("  ")
		if !r.color {
			b.WriteString(string(row))
		} else {
			for x, c := range row {
				b.WriteString(highlightColor[r.tints[y][x]])
				b.WriteRune(c)
			}
			b.WriteString(reset)
		}
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	b.WriteString(fmt.Sprintf("  cmp=%d swp=%d set=%d  %s\n",
		st.Applied.Compares, st.Applied.Swaps, st.Applied.Writes, last))

	fmt.Fprint(r.out, b.String())
	r.frames++
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
