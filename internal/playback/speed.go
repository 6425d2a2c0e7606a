package playback

import "time"

const (
	MinSpeed     = 5
	MaxSpeed     = 200
	DefaultSpeed = 150

	// MinDelay keeps fast playback from starving the host event loop.
	MinDelay = 5 * time.Millisecond
)

// ClampSpeed bounds v to [MinSpeed, MaxSpeed].
func ClampSpeed(v int) int {
	if v < MinSpeed {
		return MinSpeed
	}
	if v > MaxSpeed {
		return MaxSpeed
	}
	return v
}

// Delay maps a speed to the pause between ticks: (MaxSpeed+1-speed) ms,
// never below MinDelay. Higher speed never yields a longer delay.
func Delay(speed int) time.Duration {
	d := time.Duration(MaxSpeed+1-ClampSpeed(speed)) * time.Millisecond
	if d < MinDelay {
		return MinDelay
	}
	return d
}
