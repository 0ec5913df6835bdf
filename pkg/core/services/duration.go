package services

import (
	"math"
	"time"
)

// maxShiftHours bounds a single day's duty session. Differences outside
// (0, 24] hours come from clock skew or bad historical data and are zeroed
// rather than rejected, so the record stays visible for audit.
const maxShiftHours = 24

// boundedDurationHours returns the absolute distance between signIn and
// signOut in hours, rounded to one decimal, or 0 when the raw distance
// falls outside (0, 24] hours. The absolute value keeps a backwards pair
// (sign-out before sign-in) from ever producing a negative duration.
func boundedDurationHours(signIn, signOut time.Time) float64 {
	hours := signOut.Sub(signIn).Hours()
	if hours < 0 {
		hours = -hours
	}
	if hours <= 0 || hours > maxShiftHours {
		return 0
	}
	return round1(hours)
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
