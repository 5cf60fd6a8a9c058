package interfaces

import "fn-peaks/src/models"

// -----------------------------------------------------------------------------
// IDataExchanger defines the interface for sharing reports with external systems (Server/Push).
// -----------------------------------------------------------------------------

type IDataExchanger interface {
	// -----------------------------------------------------------------------------
	// Broadcast pushes a report to connected listeners and makes it the latest state.
	Broadcast(report *models.MPeakReport)

	// -----------------------------------------------------------------------------
	// SetLatestReport updates the internal state without broadcasting
	SetLatestReport(report *models.MPeakReport)

	// -----------------------------------------------------------------------------
	// Start the server
	Start() error

	// -----------------------------------------------------------------------------
	// Stop the server gracefully
	Stop() error
}
