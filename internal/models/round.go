package models

import "math"

// Round2 rounds to cents. Payouts, prices and difficulties are client-visible
// in two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round4 rounds render durations to a tenth of a millisecond.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
