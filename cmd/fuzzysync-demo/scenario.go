package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// window shapes one participant's relative timing within an iteration: s
// spin units before the start barrier, t inside the critical section, r
// after EndRace before looping back.
type window struct {
	S int `yaml:"s"`
	T int `yaml:"t"`
	R int `yaml:"r"`
}

// scenario is one row of the end-to-end scenario table: two windows and
// the iteration budget to run them under. Winner is set only for the
// scenario 6 variant, which races a shared string instead of timing
// two fixed windows.
type scenario struct {
	Name   string `yaml:"name"`
	A      window `yaml:"a"`
	B      window `yaml:"b"`
	Loops  uint64 `yaml:"loops"`
	Winner bool   `yaml:"winner"`
}

// builtinScenarios is the demo's end-to-end scenario table: five fixed
// window pairings that exercise alignment, each side leading, a boundary
// flush, and a degenerate zero-length B window, plus the "winner" row
// that races an unsynchronized shared variable instead of timing fixed
// windows.
func builtinScenarios() []scenario {
	return []scenario{
		{Name: "aligned", A: window{0, 1, 0}, B: window{0, 1, 0}, Loops: 100000},
		{Name: "b_ahead", A: window{3, 1, 1}, B: window{1, 1, 3}, Loops: 100000},
		{Name: "a_ahead", A: window{1, 1, 3}, B: window{3, 1, 1}, Loops: 100000},
		{Name: "flush_at_boundary", A: window{3, 1, 0}, B: window{0, 1, 3}, Loops: 100000},
		{Name: "b_degenerate", A: window{3, 1, 1}, B: window{0, 0, 0}, Loops: 100000},
		{Name: "winner", Loops: 100000, Winner: true},
	}
}

// loadScenarios reads a YAML scenario file, falling back to the built-in
// table when path is empty. The file format is a plain list:
//
//	- name: aligned
//	  a: {s: 0, t: 1, r: 0}
//	  b: {s: 0, t: 1, r: 0}
//	  loops: 100000
func loadScenarios(path string) ([]scenario, error) {
	if path == "" {
		return builtinScenarios(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	var scenarios []scenario
	if err := yaml.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}
	return scenarios, nil
}

// byName returns the scenario with the given name, or false if none
// matches - used by --scenario to select a single row out of the table.
func byName(scenarios []scenario, name string) (scenario, bool) {
	for _, s := range scenarios {
		if s.Name == name {
			return s, true
		}
	}
	return scenario{}, false
}
