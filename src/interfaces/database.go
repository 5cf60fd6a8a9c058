package interfaces

import "fn-peaks/src/models"

// -----------------------------------------------------------------------------
// IDatabase defines the contract for the run audit store.
// -----------------------------------------------------------------------------

type IDatabase interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the database schema and tables.
	Initialize() error

	// -----------------------------------------------------------------------------

	// SaveRun stores a summary of the report and its rows, returning the run id.
	SaveRun(report *models.MPeakReport) (int64, error)

	// -----------------------------------------------------------------------------

	// RecentRuns lists the latest runs, newest first.
	RecentRuns(limit int) ([]models.MRunRecord, error)

	// -----------------------------------------------------------------------------

	// CleanupOldData removes runs older than the retention policy.
	CleanupOldData() error

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
