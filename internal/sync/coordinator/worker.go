package coordinator

// spawn starts B's goroutine running worker, pinning both sides to
// distinct CPUs first when pinning is enabled and available. A nil worker
// is accepted as a no-op Reset, useful for tests that drive both RunA and
// RunB from the same goroutine without real concurrency.
func (p *Pair) spawn(worker Worker) error {
	if worker == nil {
		return nil
	}

	if p.pinCPUs && pinToCPU != nil && hardwareParallelismAvailable() {
		if !pinToCPU(0) {
			return &SpawnError{Reason: "failed to pin A to CPU 0"}
		}
	}

	p.mu.Lock()
	p.running = true
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				p.diagf("fuzzysync: worker B panicked: %v", r)
				p.stop.Store(true)
				p.bar.Bump()
			}
		}()

		if p.pinCPUs && pinToCPU != nil && hardwareParallelismAvailable() {
			pinToCPU(1)
		}

		worker(p)
	}()

	return nil
}

// Cleanup signals B to stop (if it has not already stopped itself) and
// joins its goroutine. Cleanup is idempotent: calling it on a pair with no
// running worker, or calling it twice in a row, is a no-op rather than a
// misuse.
func (p *Pair) Cleanup() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	p.stop.Store(true)
	p.bar.Bump()
	p.wg.Wait()

	p.mu.Lock()
	p.running = false
	p.mu.Unlock()
}
