package workers

import (
	"runtime"
)

// Count returns the number of workers for a task type. It respects container
// CPU limits via GOMAXPROCS.
//
// The multiplier adjusts for task characteristics:
//   - 1.0 for CPU-bound tasks
//   - 2.0 for I/O-bound tasks
//
// A positive override (EMBED_WORKERS) replaces the calculation. The limit
// caps the result; use 0 for no limit.
func Count(override int, multiplier float64, limit int) int {
	if override > 0 {
		if limit > 0 && override > limit {
			return limit
		}
		return override
	}

	available := runtime.GOMAXPROCS(0)

	workers := int(float64(available) * multiplier)

	if workers < 1 {
		workers = 1
	}
	if limit > 0 && workers > limit {
		workers = limit
	}

	return workers
}

// ForCPU returns worker count for CPU-bound tasks (1 per CPU).
func ForCPU(override, limit int) int {
	return Count(override, 1.0, limit)
}

// ForIO returns worker count for I/O-bound tasks such as oEmbed lookups
// (2 per CPU).
func ForIO(override, limit int) int {
	return Count(override, 2.0, limit)
}
