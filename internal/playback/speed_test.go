package playback

import (
	"testing"
	"time"
)

func TestDelayMonotone(t *testing.T) {
	prev := Delay(MinSpeed)
	for v := MinSpeed + 1; v <= MaxSpeed; v++ {
		d := Delay(v)
		if d > prev {
			t.Fatalf("Delay(%d) = %v > Delay(%d) = %v", v, d, v-1, prev)
		}
		if d < MinDelay {
			t.Fatalf("Delay(%d) = %v below floor", v, d)
		}
		prev = d
	}
}

func TestDelayValues(t *testing.T) {
	tests := []struct {
		speed int
		want  time.Duration
	}{
		{MinSpeed, 196 * time.Millisecond},
		{150, 51 * time.Millisecond},
		{MaxSpeed, MinDelay},
		{-10, 196 * time.Millisecond},
		{1000, MinDelay},
	}
	for _, tt := range tests {
		if got := Delay(tt.speed); got != tt.want {
			t.Errorf("Delay(%d) = %v, want %v", tt.speed, got, tt.want)
		}
	}
}

func TestParseResetMode(t *testing.T) {
	for _, s := range []string{"", "restore", "rebase"} {
		if _, err := ParseResetMode(s); err != nil {
			t.Errorf("ParseResetMode(%q): %v", s, err)
		}
	}
	if _, err := ParseResetMode("rewind"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
