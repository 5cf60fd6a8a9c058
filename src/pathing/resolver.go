package pathing

import (
	"path/filepath"
	"time"

	"fn-peaks/src/interfaces"
	"fn-peaks/src/utils"
)

// -----------------------------------------------------------------------------

// Resolver turns a day span into the existing <root>/yyyy/MM/dd directories.
type Resolver struct {
	Store    interfaces.IDirectoryStore
	Logger   interfaces.ILogger
	Calendar *utils.DayCalendar // optional
}

// -----------------------------------------------------------------------------

func NewResolver(store interfaces.IDirectoryStore, log interfaces.ILogger, cal *utils.DayCalendar) *Resolver {
	return &Resolver{Store: store, Logger: log, Calendar: cal}
}

// -----------------------------------------------------------------------------

// Candidates returns the day directories for spanDays days ending at endDate,
// most recent first. spanDays below 1 is treated as 1.
func Candidates(root string, endDate time.Time, spanDays int) []string {
	if spanDays < 1 {
		spanDays = 1
	}
	paths := make([]string, 0, spanDays)
	for i := 0; i < spanDays; i++ {
		year, month, day := utils.DayPath(endDate.AddDate(0, 0, -i))
		paths = append(paths, filepath.Join(root, year, month, day))
	}
	return paths
}

// -----------------------------------------------------------------------------

// Resolve returns the candidates that exist on the store. Missing days are
// logged and dropped.
func (r *Resolver) Resolve(root string, endDate time.Time, spanDays int) []string {
	valid, _ := r.ResolveCounted(root, endDate, spanDays)
	return valid
}

// -----------------------------------------------------------------------------

// ResolveCounted is Resolve plus the number of missing days.
func (r *Resolver) ResolveCounted(root string, endDate time.Time, spanDays int) ([]string, int) {
	candidates := Candidates(root, endDate, spanDays)
	valid := make([]string, 0, len(candidates))
	missing := 0

	for i, path := range candidates {
		if r.Store.DirExists(path) {
			valid = append(valid, path)
			continue
		}
		missing++
		r.logMissing(path, endDate.AddDate(0, 0, -i))
	}
	return valid, missing
}

// -----------------------------------------------------------------------------

func (r *Resolver) logMissing(path string, date time.Time) {
	if r.Logger == nil {
		return
	}
	if r.Calendar == nil {
		r.Logger.Info("Path does not exist: %s", path)
		return
	}
	if r.Calendar.IsBusinessDay(date) {
		r.Logger.Warning("Path does not exist: %s (business day)", path)
	} else {
		r.Logger.Info("Path does not exist: %s (non-business day)", path)
	}
}
