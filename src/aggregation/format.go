package aggregation

import (
	"strconv"

	"fn-peaks/src/models"
)

// NotAvailable is rendered for models.SentinelMissing.
const NotAvailable = "N/A"

// -----------------------------------------------------------------------------

// FormatPeak renders v with two decimals followed by unit, e.g. "67.80 %".
func FormatPeak(v float64, unit string) string {
	if v == models.SentinelMissing {
		return NotAvailable
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// -----------------------------------------------------------------------------

func PeakCell(v float64, unit string) models.MPeakCell {
	return models.MPeakCell{Value: v, Display: FormatPeak(v, unit)}
}
