package models

import "time"

// -----------------------------------------------------------------------------
// Report Structures
// -----------------------------------------------------------------------------

// MTimeRange is the requested [Start, End] interval. Start after End is an empty range.
type MTimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// MPeakCell holds a raw channel peak and its rendered form.
type MPeakCell struct {
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

type MTableRow struct {
	DeviceID string    `json:"device_id"`
	Name     string    `json:"name"`
	ChannelA MPeakCell `json:"channel_a"`
	ChannelB MPeakCell `json:"channel_b"`
}

type MPeakReport struct {
	Type            string                      `json:"type"` // "INITIAL", "UPDATE" or "QUERY"
	Range           MTimeRange                  `json:"range"`
	SpanDays        int                         `json:"span_days"`
	Columns         []string                    `json:"columns"`
	Devices         map[string]MMergedDeviceRow `json:"-"`
	Rows            []MTableRow                 `json:"rows"`
	Stats           []MChannelStats             `json:"stats"`
	GeneratedAt     time.Time                   `json:"generated_at"`
	DurationSeconds float64                     `json:"duration_seconds"`
}

// -----------------------------------------------------------------------------
// Legacy output envelope
// -----------------------------------------------------------------------------

// MFiberNodeRow is the per-device entry of the "Response" envelope.
type MFiberNodeRow struct {
	Name              string  `json:"DsFnName"`
	DsFnUtilization   float64 `json:"DsFnUtilization"`
	OfdmFnUtilization float64 `json:"OfdmFnUtilization"`
}

type MResponseEnvelope struct {
	Response map[string]MFiberNodeRow `json:"Response"`
}

// -----------------------------------------------------------------------------
// Audit and client messages
// -----------------------------------------------------------------------------

type MRunRecord struct {
	ID          int64     `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	RangeStart  time.Time `json:"range_start"`
	RangeEnd    time.Time `json:"range_end"`
	SpanDays    int       `json:"span_days"`
	Devices     int       `json:"devices"`
	DurationMs  int64     `json:"duration_ms"`
}

// MQueryCommand is sent by websocket clients.
type MQueryCommand struct {
	Command string `json:"command"` // "query" or "latest"
	Start   string `json:"start"`
	End     string `json:"end"`
}

type MErrorMessage struct {
	Type  string `json:"type"` // always "ERROR"
	Error string `json:"error"`
}
