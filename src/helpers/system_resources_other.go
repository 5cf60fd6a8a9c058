//go:build !linux && !darwin && !windows

package helpers

// totalMemoryMB is unknown on this platform.
func totalMemoryMB() int {
	return 0
}
