package coordinator

import "runtime"

// pinToCPU binds the calling OS thread to the given CPU, when the platform
// supports it and pinning is enabled. The implementation lives in
// affinity_linux.go (golang.org/x/sys/unix.SchedSetaffinity);
// affinity_other.go leaves pinToCPU nil on every other GOOS, and spawn
// then skips pinning.
//
// Returns false if pinning failed. spawn turns a failure to pin A into a
// *SpawnError and ignores a failure to pin B; neither affects yieldInWait,
// which depends only on hardwareParallelismAvailable.
var pinToCPU func(cpu int) bool

// hardwareParallelismAvailable reports whether the runtime believes at
// least two CPUs are available to schedule A and B concurrently. When it
// is false, yieldInWait must be forced on so the spin barrier yields
// voluntarily instead of starving the other goroutine on a single core.
func hardwareParallelismAvailable() bool {
	return runtime.GOMAXPROCS(0) >= 2 && runtime.NumCPU() >= 2
}
