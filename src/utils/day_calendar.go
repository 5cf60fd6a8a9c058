package utils

import (
	"log"
	"strings"
	"time"

	"github.com/scmhub/calendar"
)

// DayCalendar classifies dates as business days using scmhub/calendar.
type DayCalendar struct {
	Calendar *calendar.Calendar
	Fallback bool
	Timezone *time.Location
}

// -----------------------------------------------------------------------------

// NewDayCalendar loads the calendar for a MIC code (ISO 10383, e.g. "xnys").
// An empty MIC returns nil; an unknown one uses a Mon-Fri fallback.
func NewDayCalendar(mic string) *DayCalendar {
	mic = strings.ToLower(strings.TrimSpace(mic))
	if mic == "" {
		return nil
	}

	cal := calendar.GetCalendar(mic)
	if cal == nil {
		log.Printf("WARNING: Failed to load calendar for MIC '%s'. Using Mon-Fri fallback.", mic)
		return &DayCalendar{Fallback: true, Timezone: time.UTC}
	}

	return &DayCalendar{Calendar: cal, Timezone: cal.Loc}
}

// -----------------------------------------------------------------------------

// IsBusinessDay reports whether the calendar date of date (year, month, day as
// written in the directory path) is a business day.
func (dc *DayCalendar) IsBusinessDay(date time.Time) bool {
	loc := dc.Timezone
	if loc == nil {
		loc = time.UTC
	}
	// Noon avoids the date shifting when moved into the calendar's zone.
	day := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, loc)

	if dc.Fallback {
		weekday := day.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}
	return dc.Calendar.IsBusinessDay(day)
}
