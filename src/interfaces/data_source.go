package interfaces

import (
	"context"
	"time"

	"fn-peaks/src/models"
)

// -----------------------------------------------------------------------------
// IChannelSource produces the per-device peaks of one measurement channel.
// -----------------------------------------------------------------------------

type IChannelSource interface {

	// Name returns the unique channel identifier
	Name() string

	// -----------------------------------------------------------------------------

	// Fetch aggregates the spanDays day directories ending at endDate.
	Fetch(ctx context.Context, endDate time.Time, spanDays int) (map[string]models.MDeviceAggregate, models.MChannelStats, error)
}
