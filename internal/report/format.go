package report

import (
	"math"

	"github.com/dustin/go-humanize"
)

// Round2 rounds x to two decimal places, halves away from zero.
func Round2(x float64) float64 {
	r := math.Round(x*100) / 100
	if r == 0 {
		return 0 // drop the sign of -0
	}
	return r
}

// FormatFloat renders x rounded to two decimals with thousands separators
// and no trailing zeros: 1234.5678 becomes "1,234.57", 1234.5 becomes
// "1,234.5".
func FormatFloat(x float64) string {
	return humanize.Commaf(Round2(x))
}

// FormatCount renders n with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}
