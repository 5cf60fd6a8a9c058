package analysis

import (
	"sort"

	"fn-peaks/src/aggregation"
	"fn-peaks/src/models"
)

// DeviceColumn heads the device identifier column.
const DeviceColumn = "Fiber Node"

// -----------------------------------------------------------------------------

// Columns returns the table headers: the device column then one per channel label.
func Columns(cfg *models.MConfig) []string {
	cols := []string{DeviceColumn}
	for _, ch := range cfg.Channels {
		label := ch.Label
		if label == "" {
			label = ch.Name
		}
		cols = append(cols, label)
	}
	return cols
}

// -----------------------------------------------------------------------------

// BuildRows renders merged peaks as table rows ordered by device id.
func BuildRows(merged map[string]models.MMergedDeviceRow, unit string) []models.MTableRow {
	rows := make([]models.MTableRow, 0, len(merged))
	for id, m := range merged {
		rows = append(rows, models.MTableRow{
			DeviceID: id,
			Name:     m.Name,
			ChannelA: aggregation.PeakCell(m.ChannelAPeak, unit),
			ChannelB: aggregation.PeakCell(m.ChannelBPeak, unit),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].DeviceID < rows[j].DeviceID })
	return rows
}
