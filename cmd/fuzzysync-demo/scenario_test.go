package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuiltinScenariosCoverAllSixRows(t *testing.T) {
	scenarios := builtinScenarios()
	require.Len(t, scenarios, 6)

	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name
	}
	require.Equal(t, []string{
		"aligned", "b_ahead", "a_ahead", "flush_at_boundary", "b_degenerate", "winner",
	}, names)

	winner, ok := byName(scenarios, "winner")
	require.True(t, ok)
	require.True(t, winner.Winner)
}

func TestLoadScenariosFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- name: custom
  a: {s: 1, t: 2, r: 3}
  b: {s: 3, t: 2, r: 1}
  loops: 500
`), 0o644))

	scenarios, err := loadScenarios(path)
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	require.Equal(t, "custom", scenarios[0].Name)
	require.Equal(t, window{1, 2, 3}, scenarios[0].A)
	require.Equal(t, uint64(500), scenarios[0].Loops)
}

func TestLoadScenariosEmptyPathFallsBackToBuiltins(t *testing.T) {
	scenarios, err := loadScenarios("")
	require.NoError(t, err)
	require.Equal(t, builtinScenarios(), scenarios)
}

func TestByNameMissing(t *testing.T) {
	_, ok := byName(builtinScenarios(), "nonexistent")
	require.False(t, ok)
}
