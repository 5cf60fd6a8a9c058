package aggregation

import "fn-peaks/src/models"

// -----------------------------------------------------------------------------

// Merge joins two channel aggregates on channel A's keys. Devices only present
// in b are dropped; devices missing from b get models.SentinelMissing.
func Merge(a, b map[string]models.MDeviceAggregate) map[string]models.MMergedDeviceRow {
	merged := make(map[string]models.MMergedDeviceRow, len(a))
	for id, aggA := range a {
		peakB := models.SentinelMissing
		if aggB, ok := b[id]; ok {
			peakB = aggB.Peak
		}
		merged[id] = models.MMergedDeviceRow{
			DeviceID:     id,
			Name:         aggA.Name,
			ChannelAPeak: aggA.Peak,
			ChannelBPeak: peakB,
		}
	}
	return merged
}
