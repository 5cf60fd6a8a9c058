package utils

import (
	"strings"
	"time"

	"fn-peaks/src/helpers"
	"fn-peaks/src/models"
)

// -----------------------------------------------------------------------------

// ParseTime parses s with layout first, then the fallback layouts. Layouts
// without a zone are read in loc.
func ParseTime(s, layout string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.UTC
	}

	layouts := append([]string{layout}, FallbackTimeLayouts...)
	var firstErr error
	for _, l := range layouts {
		if l == "" {
			continue
		}
		t, err := time.ParseInLocation(l, s, loc)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, helpers.NewInvalidTimeError(s, firstErr)
}

// -----------------------------------------------------------------------------

// ParseRange parses both ends of a time range.
func ParseRange(start, end, layout string, loc *time.Location) (models.MTimeRange, error) {
	s, err := ParseTime(start, layout, loc)
	if err != nil {
		return models.MTimeRange{}, err
	}
	e, err := ParseTime(end, layout, loc)
	if err != nil {
		return models.MTimeRange{}, err
	}
	return models.MTimeRange{Start: s, End: e}, nil
}

// -----------------------------------------------------------------------------

// DayPath returns the yyyy, MM, dd path segments of date.
func DayPath(date time.Time) (string, string, string) {
	return date.Format(YearLayout), date.Format(MonthLayout), date.Format(DayLayout)
}
