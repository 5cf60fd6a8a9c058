package helpers

import "runtime"

// memoryPerWorkerMB is the budget for one directory fold held in memory.
const memoryPerWorkerMB = 256

// RecommendedWorkers sizes the directory pool from the CPU count, capped by
// total memory. Unknown memory leaves only the CPU bound.
func RecommendedWorkers() int {
	return recommendedWorkers(runtime.NumCPU(), totalMemoryMB())
}

func recommendedWorkers(cpus, totalMB int) int {
	workers := cpus
	if totalMB > 0 {
		if byMem := totalMB / memoryPerWorkerMB; byMem < workers {
			workers = byMem
		}
	}
	if workers < 1 {
		return 1
	}
	return workers
}
