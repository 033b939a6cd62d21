// Package util collects small cross-cutting helpers: heap sampling, a
// rate-limiter wrapper for pacing I/O, and generic path/set
// helpers shared by the layer assigner and the scanner.
package util

import "runtime"

// HeapAllocMB returns the current heap allocation in MB.
func HeapAllocMB() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc / 1024 / 1024
}
