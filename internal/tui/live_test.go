package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/sortviz/internal/playback"
)

func TestLiveRendererDrawsEveryFrame(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, 1000, false)
	tick := time.Unix(0, 0)
	r.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	clock := playback.NewManualClock()
	s, err := playback.New([]int{30, 10, 20}, "selection", playback.WithClock(clock), playback.WithObserver(r))
	if err != nil {
		t.Fatal(err)
	}
	n := s.Log().Len()
	s.Play()
	clock.RunUntilIdle(100)

	if r.Frames() != n+1 {
		t.Errorf("expected %d frames, got %d", n+1, r.Frames())
	}
	out := buf.String()
	if !strings.Contains(out, "selection") {
		t.Error("header missing algorithm name")
	}
	if !strings.Contains(out, "done") {
		t.Error("final frame missing")
	}
	if strings.Contains(out, "\033[9") {
		t.Error("colour codes written with colour disabled")
	}
}

func TestLiveRendererThrottles(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, 10, true)
	fixed := time.Unix(100, 0)
	r.now = func() time.Time { return fixed }

	clock := playback.NewManualClock()
	s, err := playback.New([]int{5, 4, 3, 2, 1}, "bubble", playback.WithClock(clock), playback.WithObserver(r))
	if err != nil {
		t.Fatal(err)
	}
	s.Play()
	clock.RunUntilIdle(1000)

	// one drawn op while the clock is frozen, plus the finish frame
	if r.Frames() != 2 {
		t.Errorf("expected 2 frames, got %d", r.Frames())
	}
	if !strings.Contains(buf.String(), reset) {
		t.Error("expected colour output")
	}
}

func TestLiveRendererSamplesWideArrays(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, 1, false)

	values := make([]int, 3*width)
	for i := range values {
		values[i] = i + 1
	}
	s, err := playback.New(values, "quick", playback.WithClock(playback.NewManualClock()), playback.WithObserver(r))
	if err != nil {
		t.Fatal(err)
	}
	s.Step()

	if r.canvas[height-1][width-1] == ' ' {
		t.Error("last column should hold a bar")
	}
}
