package coordinator

import "fmt"

// SpawnError reports that Reset could not start B's goroutine-equivalent
// worker. The pair remains safe to Cleanup after a SpawnError: no thread
// was created, so there is nothing left running to join.
type SpawnError struct {
	Reason string
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("fuzzysync: failed to start worker B: %s", e.Reason)
}

// MisuseError reports a caller protocol violation. The only violation the
// library detects is Reset called while a previous worker is still
// running and has not been joined by Cleanup; unbalanced start/end-race
// calls are not detected.
//
// Misuse is detectable via assertions and the library is not required to
// recover from it; MisuseError exists so callers that choose to check
// errors get a descriptive message rather than a panic - see pair.go's
// Reset for where it is raised.
type MisuseError struct {
	Op     string
	Reason string
}

func (e *MisuseError) Error() string {
	return fmt.Sprintf("fuzzysync: misuse in %s: %s", e.Op, e.Reason)
}
