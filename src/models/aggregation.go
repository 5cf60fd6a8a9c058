package models

// SentinelMissing marks a channel peak with no data for the device.
const SentinelMissing = -1.0

// MDeviceSample is one parsed log line.
type MDeviceSample struct {
	DeviceID string
	Name     string
	Value    float64
}

// MDeviceAggregate is the running peak of one device within one channel.
type MDeviceAggregate struct {
	Name string  `json:"name"`
	Peak float64 `json:"peak"`
}

// MMergedDeviceRow combines both channel peaks for a device.
type MMergedDeviceRow struct {
	DeviceID     string  `json:"device_id"`
	Name         string  `json:"name"`
	ChannelAPeak float64 `json:"channel_a"`
	ChannelBPeak float64 `json:"channel_b"`
}
