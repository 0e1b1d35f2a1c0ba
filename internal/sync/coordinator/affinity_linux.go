//go:build linux

package coordinator

import (
	"runtime"

	"golang.org/x/sys/unix"
)

func init() {
	pinToCPU = pinToCPULinux
}

// pinToCPULinux binds the calling OS thread to cpu using
// sched_setaffinity, locking the calling goroutine to its current OS
// thread first (runtime.LockOSThread) so the affinity mask actually
// sticks to the goroutine that called StartRaceA/StartRaceB rather than a
// thread the Go scheduler later reuses for something else.
//
// Modeled on the CPU-pinning helper other_examples' perf-sensitive
// services use before a hot loop (set affinity, then run): the
// SchedSetaffinity call itself is best-effort and its error is reported to
// the caller rather than treated as fatal, since pinning requires
// privileges Fuzzy Sync should not assume it has.
func pinToCPULinux(cpu int) bool {
	runtime.LockOSThread()

	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)

	tid := unix.Gettid()
	if err := unix.SchedSetaffinity(tid, &set); err != nil {
		return false
	}
	return true
}
