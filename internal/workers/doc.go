/*
Package workers provides utilities for determining worker pool sizes in
containerized environments.

When running in containers the number of available CPUs may be limited by
cgroup constraints. Go 1.19+ sets GOMAXPROCS from container CPU limits,
but runtime.NumCPU() still returns the host machine's CPU count, so sizing
pools from it over-provisions badly on large nodes.

The helpers here size pools from GOMAXPROCS instead:

	import "media-scan/internal/workers"

	// For CPU-intensive tasks (hashing, signing)
	numWorkers := workers.ForCPU(8)

	// For I/O-bound tasks (directory walks, database writes)
	numWorkers := workers.ForIO(16)

	// For mixed workloads
	numWorkers := workers.ForMixed(12)

For fine-grained control use Count directly:

	// 3 workers per CPU, maximum of 24
	numWorkers := workers.Count(3.0, 24)

All functions respect the SCAN_WORKERS environment variable, allowing
operators to override the automatic calculation:

	env:
	- name: SCAN_WORKERS
	  value: "4"
*/
package workers
