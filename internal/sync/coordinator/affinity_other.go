//go:build !linux

package coordinator

// pinToCPU is unavailable outside Linux in this implementation; Reset
// detects a nil pinToCPU (see affinity.go) and does not attempt to pin.
// yieldInWait is still decided only by hardwareParallelismAvailable.
func init() {
	pinToCPU = nil
}
