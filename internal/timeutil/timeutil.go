// Package timeutil provides utility functions for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"math"
	"time"
)

const secondsInAMinute = 60

// Round rounds a time value in seconds to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// SecsToMinsAndSecs expresses a seconds value in minutes and seconds.
func SecsToMinsAndSecs(seconds float64) (mins, secs int) {
	total := Round(seconds)

	if total < 0 {
		total = 0
	}

	mins = total / secondsInAMinute
	secs = total % secondsInAMinute

	return
}

// FormatRemaining renders a countdown as "MM:SS". Negative durations are
// clamped to "00:00".
func FormatRemaining(d time.Duration) string {
	m, s := SecsToMinsAndSecs(d.Seconds())

	return fmt.Sprintf("%02d:%02d", m, s)
}
