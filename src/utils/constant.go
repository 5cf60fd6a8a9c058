package utils

// -----------------------------------------------------------------------------

// Path layout of day directories under a channel root: <root>/yyyy/MM/dd.
const (
	YearLayout  = "2006"
	MonthLayout = "01"
	DayLayout   = "02"
)

// -----------------------------------------------------------------------------

// Fallback time layouts accepted after the configured one.
var FallbackTimeLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}
