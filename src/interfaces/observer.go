package interfaces

import "time"

// -----------------------------------------------------------------------------
// IObserver receives pipeline counters. Implementations must be safe for concurrent use.
// -----------------------------------------------------------------------------

type IObserver interface {

	// -----------------------------------------------------------------------------

	// IncCounter adds delta to the named counter for a channel.
	IncCounter(name, channel string, delta float64)

	// -----------------------------------------------------------------------------

	// ObserveRun records the wall-clock duration of one report run.
	ObserveRun(d time.Duration)

	// -----------------------------------------------------------------------------

	// SetDevices records the number of devices in the latest merged report.
	SetDevices(n int)
}
