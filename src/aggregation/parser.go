package aggregation

import (
	"math"
	"strconv"
	"strings"

	"fn-peaks/src/models"
)

const (
	fieldSeparator = ","
	quote          = `"`
	minFields      = 3
)

// -----------------------------------------------------------------------------

// ParseLine splits a `"id","name","value"` record. It reports false for lines
// with fewer than three fields or an unparsable value.
func ParseLine(line string) (models.MDeviceSample, bool) {
	parts := strings.Split(line, fieldSeparator)
	if len(parts) < minFields {
		return models.MDeviceSample{}, false
	}

	value, ok := ParseValue(unquote(parts[2]))
	if !ok {
		return models.MDeviceSample{}, false
	}

	return models.MDeviceSample{
		DeviceID: unquote(parts[0]),
		Name:     unquote(parts[1]),
		Value:    value,
	}, true
}

// -----------------------------------------------------------------------------

// ParseValue reads a period-decimal float. Hex notation, digit separators, NaN
// and infinities are rejected.
func ParseValue(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// -----------------------------------------------------------------------------

// unquote strips one leading and one trailing double quote.
func unquote(s string) string {
	s = strings.TrimPrefix(s, quote)
	return strings.TrimSuffix(s, quote)
}
