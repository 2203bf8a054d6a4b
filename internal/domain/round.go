package domain

import "math"

// Round3 rounds to three decimals, the precision used throughout the report.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
