package main

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// progress prints a one-line, self-overwriting status update when stderr
// is an interactive terminal, and stays silent otherwise (piped output,
// CI logs) so the demo's stdout/stderr stay script-friendly by default.
type progress struct {
	enabled bool
}

func newProgress() *progress {
	return &progress{enabled: term.IsTerminal(int(os.Stderr.Fd()))}
}

func (p *progress) update(scenarioName string, loop, total uint64) {
	if !p.enabled {
		return
	}
	fmt.Fprintf(os.Stderr, "\r%s: %d/%d", scenarioName, loop, total)
}

func (p *progress) done(scenarioName string) {
	if !p.enabled {
		return
	}
	fmt.Fprintf(os.Stderr, "\r%s: done\n", scenarioName)
}
