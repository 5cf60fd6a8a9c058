package interfaces

import (
	"context"

	"fn-peaks/src/models"
)

// -----------------------------------------------------------------------------
// IPeakRunner computes a merged peak report for a time range.
// analysis.PeakFacade satisfies it.
// -----------------------------------------------------------------------------

type IPeakRunner interface {

	// -----------------------------------------------------------------------------

	// Run validates r and aggregates both channels. A range longer than the
	// configured limit returns a *helpers.RangeTooLargeError without touching storage.
	Run(ctx context.Context, r models.MTimeRange) (*models.MPeakReport, error)
}
